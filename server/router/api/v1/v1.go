// Package v1 exposes the assistant over HTTP. The API surface is thin:
// everything interesting happens in the assistant service.
package v1

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hearthside/hearth/internal/profile"
	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/server/service/assistant"
	"github.com/hearthside/hearth/server/service/schedule"
	"github.com/hearthside/hearth/store"
)

type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Assistant *assistant.Service
	Detector  *schedule.Detector
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, assistantService *assistant.Service, detector *schedule.Detector) *APIV1Service {
	return &APIV1Service{
		Profile:   profile,
		Store:     store,
		Assistant: assistantService,
		Detector:  detector,
	}
}

// Register mounts the v1 routes on the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/assistant/messages", s.handleMessage)
	g.GET("/schedule/free-slots", s.handleFreeSlots)
}

type messageRequest struct {
	UserID  int32  `json:"userId"`
	Message string `json:"message"`
	History []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"history"`
}

type messageResponse struct {
	RequestID string                  `json:"requestId"`
	Result    *assistant.ActionResult `json:"result"`
}

func (s *APIV1Service) handleMessage(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	if req.UserID == 0 {
		req.UserID = 1
	}

	history := make([]ai.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, ai.Message{Role: m.Role, Content: m.Content})
	}

	result := s.Assistant.ProcessMessage(c.Request().Context(), req.UserID, req.Message, history)
	return c.JSON(http.StatusOK, &messageResponse{
		RequestID: uuid.NewString(),
		Result:    result,
	})
}

func (s *APIV1Service) handleFreeSlots(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	userID := int32(1)
	if raw := c.QueryParam("userId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
		}
		userID = int32(parsed)
	}

	slots, err := s.Detector.FreeSlots(c.Request().Context(), userID, date, schedule.DefaultEventDuration)
	if err != nil {
		return errors.Wrap(err, "failed to compute free slots")
	}
	return c.JSON(http.StatusOK, map[string]any{"date": date, "slots": slots})
}
