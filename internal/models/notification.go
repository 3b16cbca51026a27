package models

// NotificationKind tags the payload of an outbound push notification so
// the mobile client can route it without inspecting free-form fields.
type NotificationKind string

const (
	KindPinchazoAlert    NotificationKind = "pinchazo_alert"
	KindGomeroAccepted   NotificationKind = "gomero_accepted"
	KindGomeroOnWay      NotificationKind = "gomero_on_way"
	KindGomeroArrived    NotificationKind = "gomero_arrived"
	KindServiceCompleted NotificationKind = "service_completed"
	KindServiceCancelled NotificationKind = "service_cancelled"
	KindGomeroRejected   NotificationKind = "gomero_rejected"
	KindChatMessage      NotificationKind = "chat_message"
	KindTest             NotificationKind = "test"
)
