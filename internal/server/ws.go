package server

import (
	"context"
	"errors"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
)

type wsQuestion struct {
	Type     string `json:"type"`
	Question string `json:"question"`
}

type wsReply struct {
	Type     string `json:"type"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// GET /api/sessions/:id/ws
//
// Each {"type":"question"} message gets one "answer" or "error" reply.
func (s *implServer) handleWebSocket(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Error(c.Request.Context(), "WebSocket accept failed: %v", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	ctx := c.Request.Context()
	s.logger.Info(ctx, "WebSocket connected for session %s", sess.ID)

	for {
		var msg wsQuestion
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				s.logger.Debug(ctx, "WebSocket read ended: %v", err)
			}
			return
		}

		reply := s.answerOverWS(ctx, sess, msg)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			s.logger.Debug(ctx, "WebSocket write failed: %v", err)
			return
		}
	}
}

func (s *implServer) answerOverWS(ctx context.Context, sess *session.Session, msg wsQuestion) wsReply {
	if msg.Type != "question" {
		return wsReply{
			Type:    "error",
			Code:    string(apperr.CodeValidation),
			Message: "unsupported message type " + msg.Type,
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	answer, err := sess.Answer(ctx, msg.Question)
	if err != nil {
		return wsReply{
			Type:     "error",
			Question: msg.Question,
			Code:     string(apperr.CodeOf(err)),
			Message:  err.Error(),
		}
	}
	return wsReply{Type: "answer", Question: msg.Question, Answer: answer}
}
