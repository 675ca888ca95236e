package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = verification / callback log.
  One row per verification attempt (success or mismatch), raw payload kept
  for debugging and replay.
*/

const (
	GatewayEventProcessed         = "processed"
	GatewayEventSignatureMismatch = "signature_mismatch"
	GatewayEventFailed            = "failed"
)

type PaymentGatewayEvent struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`

	GatewayEventOrderID   string  `gorm:"column:gateway_event_order_id;type:varchar(100);index" json:"gateway_event_order_id"`
	GatewayEventPaymentID *string `gorm:"column:gateway_event_payment_id;type:varchar(100)" json:"gateway_event_payment_id,omitempty"`
	GatewayEventSignature *string `gorm:"column:gateway_event_signature;type:varchar(200)" json:"gateway_event_signature,omitempty"`

	GatewayEventPayload datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`

	GatewayEventStatus string  `gorm:"column:gateway_event_status;type:varchar(30);not null" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error;type:text" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt time.Time `gorm:"column:gateway_event_received_at;not null;autoCreateTime" json:"gateway_event_received_at"`
}

func (PaymentGatewayEvent) TableName() string { return "payment_gateway_events" }

func (e *PaymentGatewayEvent) BeforeCreate(tx *gorm.DB) error {
	if e.GatewayEventID == uuid.Nil {
		e.GatewayEventID = uuid.New()
	}
	return nil
}
