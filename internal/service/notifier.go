package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/push"
	"github.com/sirupsen/logrus"
)

// Notifier triggers the push notifications that accompany lifecycle
// transitions. Every method is detached: the outcome is only logged and
// never propagates back into the transition that triggered it.
type Notifier interface {
	AlertCreated(ctx context.Context, alert *models.PinchazoAlert, riderName string, recipients []int64)
	GomeroAccepted(ctx context.Context, alert *models.PinchazoAlert, gomeroName, gomeroPhone string)
	StatusChanged(ctx context.Context, alert *models.PinchazoAlert, kind models.NotificationKind)
	ChatMessage(ctx context.Context, recipients []int64, chatID string, senderID int64, senderName, preview string)
}

// DeviceTokenRepository is the write side of the push token registry.
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, userID int64, token string) error
	Delete(ctx context.Context, userID int64, token string) error
}

// NotificationService is the handler-facing contract for the token
// registry and the test broadcast.
type NotificationService interface {
	RegisterToken(ctx context.Context, userID int64, token string) error
	UnregisterToken(ctx context.Context, userID int64, token string) error
	SendTest(ctx context.Context, userID int64, title, body string, data map[string]string) error
}

type PushNotifier struct {
	publisher push.Publisher
	tokens    DeviceTokenRepository
	logger    *logrus.Logger
}

// NewPushNotifier returns the production implementation of both
// Notifier and NotificationService.
func NewPushNotifier(publisher push.Publisher, tokens DeviceTokenRepository, logger *logrus.Logger) *PushNotifier {
	return &PushNotifier{
		publisher: publisher,
		tokens:    tokens,
		logger:    logger,
	}
}

func (n *PushNotifier) AlertCreated(ctx context.Context, alert *models.PinchazoAlert, riderName string, recipients []int64) {
	if riderName == "" {
		riderName = "Un usuario"
	}
	n.publish(ctx, push.Job{
		Kind:       models.KindPinchazoAlert,
		Title:      "🚨 ¡Nueva alerta de pinchazo!",
		Body:       fmt.Sprintf("%s necesita ayuda ahora", riderName),
		Recipients: recipients,
		Data: map[string]string{
			"type":    string(models.KindPinchazoAlert),
			"alertId": alert.ID.String(),
		},
	})
}

func (n *PushNotifier) GomeroAccepted(ctx context.Context, alert *models.PinchazoAlert, gomeroName, gomeroPhone string) {
	if gomeroName == "" {
		gomeroName = "Un gomero"
	}
	n.publish(ctx, push.Job{
		Kind:       models.KindGomeroAccepted,
		Title:      "✅ ¡Un gomero está en camino!",
		Body:       fmt.Sprintf("%s ha aceptado tu solicitud. Teléfono: %s", gomeroName, gomeroPhone),
		Recipients: []int64{alert.UserID},
		Data: map[string]string{
			"type":        string(models.KindGomeroAccepted),
			"alertId":     alert.ID.String(),
			"gomeroName":  gomeroName,
			"gomeroPhone": gomeroPhone,
		},
	})
}

func (n *PushNotifier) StatusChanged(ctx context.Context, alert *models.PinchazoAlert, kind models.NotificationKind) {
	var title, body string
	switch kind {
	case models.KindGomeroOnWay:
		title = "🚗 Mecánico en camino"
		body = "El mecánico está en camino a tu ubicación."
	case models.KindGomeroArrived:
		title = "👨‍🔧 Mecánico ha llegado"
		body = "El mecánico ha llegado a tu ubicación."
	case models.KindServiceCompleted:
		title = "✅ Servicio Completado"
		body = "El mecánico ha marcado el servicio como completado."
	case models.KindServiceCancelled:
		title = "❌ Servicio Cancelado"
		body = "El mecánico ha cancelado el servicio."
	default:
		title = "❌ Solicitud Rechazada"
		body = "Un mecánico rechazó tu solicitud. Buscando otro disponible..."
		kind = models.KindGomeroRejected
	}

	n.publish(ctx, push.Job{
		Kind:       kind,
		Title:      title,
		Body:       body,
		Recipients: []int64{alert.UserID},
		Data: map[string]string{
			"type":    string(kind),
			"alertId": alert.ID.String(),
			"status":  string(alert.Status),
		},
	})
}

func (n *PushNotifier) ChatMessage(ctx context.Context, recipients []int64, chatID string, senderID int64, senderName, preview string) {
	if senderName == "" {
		senderName = "un contacto"
	}
	// Truncate on rune boundaries; Spanish previews routinely carry
	// accented characters that a byte slice would cut in half.
	if runes := []rune(preview); len(runes) > 50 {
		preview = string(runes[:50])
	}
	n.publish(ctx, push.Job{
		Kind:       models.KindChatMessage,
		Title:      "Chat Riders",
		Body:       fmt.Sprintf("Nuevo mensaje de %s", senderName),
		Recipients: recipients,
		Silent:     true,
		Data: map[string]string{
			"type":     string(models.KindChatMessage),
			"chatId":   chatID,
			"senderId": fmt.Sprintf("%d", senderID),
			"message":  preview,
		},
	})
}

func (n *PushNotifier) RegisterToken(ctx context.Context, userID int64, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("service: empty device token: %w", ErrValidation)
	}
	if err := n.tokens.Upsert(ctx, userID, token); err != nil {
		return fmt.Errorf("service: could not register device token: %w", err)
	}
	return nil
}

func (n *PushNotifier) UnregisterToken(ctx context.Context, userID int64, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("service: empty device token: %w", ErrValidation)
	}
	if err := n.tokens.Delete(ctx, userID, token); err != nil {
		return fmt.Errorf("service: could not unregister device token: %w", err)
	}
	return nil
}

// SendTest broadcasts a test notification to everyone except the sender.
func (n *PushNotifier) SendTest(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	if title == "" {
		title = "🔔 Prueba de notificaciones"
	}
	if body == "" {
		body = "Mensaje de prueba"
	}
	if data == nil {
		data = map[string]string{}
	}
	data["type"] = string(models.KindTest)

	err := n.publisher.Publish(ctx, push.Job{
		Kind:         models.KindTest,
		Title:        title,
		Body:         body,
		Data:         data,
		Broadcast:    true,
		ExceptUserID: userID,
	})
	if err != nil {
		return fmt.Errorf("service: could not enqueue test notification: %w", err)
	}
	return nil
}

// publish hands the job to the queue. Failures are logged and dropped:
// a notification must never fail the transition that triggered it.
func (n *PushNotifier) publish(ctx context.Context, job push.Job) {
	if err := n.publisher.Publish(ctx, job); err != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{
			"service": "notifier",
			"kind":    job.Kind,
		}).Error("Failed to enqueue push notification")
	}
}
