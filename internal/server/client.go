package server

import (
	"errors"
	"net/http"
	"time"

	"platforms-server/internal/domain"
	"platforms-server/internal/engine"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"
	"platforms-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game     *engine.GameService
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	Session  string
	EntityID domain.EntityID
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game:    game,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 256),
		Session: "session_" + utils.GenerateID(),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Game.Logout(c.Session)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithFields(logrus.Fields{
			"session":   c.Session,
			"entity_id": c.EntityID,
		}).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		close(c.Send)
		return
	}
	if domain.ParseAction(loginCmd.Action) != domain.ActionLogin {
		c.reject("first message must be LOGIN")
		return
	}

	// 2. ПРИВЯЗКА К СУЩНОСТИ И ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates, id, err := c.Game.Login(c.Session, loginCmd.Token)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, domain.ErrEntityNotFound) {
			msg = "entity not found"
		}
		c.reject(msg)
		return
	}
	c.EntityID = id
	logger.Log.WithFields(logrus.Fields{
		"session":   c.Session,
		"entity_id": id,
	}).Info("Client logged in")

	// Запускаем пересылку обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Warn("WS Error")
			}
			break
		}
		if err := c.Game.ProcessCommand(c.Session, cmd); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"session": c.Session,
				"action":  cmd.Action,
			}).WithError(err).Debug("Command rejected")
			c.Game.Hub.SendTo(c.Session, api.ServerResponse{Type: api.MsgError, Error: err.Error()})
		}
	}
}

// reject отправляет ошибку до логина и закрывает канал записи
func (c *Client) reject(msg string) {
	c.Send <- api.ServerResponse{Type: api.MsgError, Error: msg}
	close(c.Send)
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
