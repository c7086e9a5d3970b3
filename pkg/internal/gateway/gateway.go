package gateway

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/teamorbit/chatsync/pkg/internal/models"
	"github.com/teamorbit/chatsync/pkg/internal/services"
)

// REST talks to the messages backend over its HTTP contract. It implements
// services.Gateway.
type REST struct {
	baseURL string
	timeout time.Duration
}

func NewREST(baseURL string) *REST {
	return &REST{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: 10 * time.Second,
	}
}

func (g *REST) ListMessages(query models.MessageQuery) (models.MessageHistory, error) {
	args := url.Values{}
	args.Set("workspaceId", query.WorkspaceID)
	args.Set("userId", query.UserID)
	if len(query.ChannelID) > 0 {
		args.Set("channelId", query.ChannelID)
	}

	var history models.MessageHistory
	if err := g.do(fiber.MethodGet, "/api/messages", args.Encode(), nil, &history); err != nil {
		return history, err
	}
	return history, nil
}

func (g *REST) CreateMessage(draft models.MessageDraft) (models.Message, error) {
	var message models.Message
	if err := g.do(fiber.MethodPost, "/api/messages", "", draft, &message); err != nil {
		return message, err
	}
	return message, nil
}

func (g *REST) SaveReadReceipt(receipt models.ReadReceipt) (models.ReadReceipt, error) {
	var confirmed models.ReadReceipt
	if err := g.do(fiber.MethodPost, "/api/messages/read-receipts", "", receipt, &confirmed); err != nil {
		return confirmed, err
	}
	return confirmed, nil
}

func (g *REST) AddReaction(request models.ReactionRequest) ([]models.ReactionAggregate, error) {
	var totals []models.ReactionAggregate
	path := fmt.Sprintf("/api/messages/%s/reactions", url.PathEscape(request.MessageID))
	if err := g.do(fiber.MethodPost, path, "", request, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

func (g *REST) RemoveReaction(request models.ReactionRequest) ([]models.ReactionAggregate, error) {
	args := url.Values{}
	args.Set("workspaceId", request.WorkspaceID)
	args.Set("userId", request.UserID)
	args.Set("emoji", request.Emoji)

	var totals []models.ReactionAggregate
	path := fmt.Sprintf("/api/messages/%s/reactions", url.PathEscape(request.MessageID))
	if err := g.do(fiber.MethodDelete, path, args.Encode(), nil, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

func (g *REST) do(method string, path string, query string, body any, out any) error {
	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	request := agent.Request()
	request.Header.SetMethod(method)
	request.SetRequestURI(g.baseURL + path)
	if len(query) > 0 {
		request.URI().SetQueryString(query)
	}
	if body != nil {
		agent.JSON(body)
	}
	agent.Timeout(g.timeout)

	op := fmt.Sprintf("%s %s", method, path)
	if err := agent.Parse(); err != nil {
		return &services.NetworkError{Op: op, Err: err}
	}

	status, payload, errs := agent.Bytes()
	if len(errs) > 0 {
		return &services.NetworkError{Op: op, Err: errs[0]}
	}
	if status >= fiber.StatusBadRequest {
		return &services.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", status, payload)}
	}

	if out != nil {
		if err := jsoniter.Unmarshal(payload, out); err != nil {
			return &services.NetworkError{Op: op, Err: err}
		}
	}
	return nil
}
