package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/RividuPesara/apex-auto/internal/model"
)

type EventPublisher interface {
	PublishBuildCreated(build *model.Build) error
	PublishBuildUpdated(build *model.Build) error
	PublishBuildDeleted(buildID, userID uuid.UUID) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type BuildSavedEvent struct {
	EventType string    `json:"event_type"`
	BuildID   uuid.UUID `json:"build_id"`
	UserID    uuid.UUID `json:"user_id"`
	CarModel  string    `json:"car_model"`
	TotalCost int64     `json:"total_cost"`
	SavedAt   time.Time `json:"saved_at"`
}

type BuildDeletedEvent struct {
	EventType string    `json:"event_type"`
	BuildID   uuid.UUID `json:"build_id"`
	UserID    uuid.UUID `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (p *NatsPublisher) PublishBuildCreated(build *model.Build) error {
	return p.publishSaved("build.created", build)
}

func (p *NatsPublisher) PublishBuildUpdated(build *model.Build) error {
	return p.publishSaved("build.updated", build)
}

func (p *NatsPublisher) publishSaved(subject string, build *model.Build) error {
	event := BuildSavedEvent{
		EventType: subject,
		BuildID:   build.ID,
		UserID:    build.UserID,
		CarModel:  build.CarModel,
		TotalCost: build.TotalEstimatedCost,
		SavedAt:   time.Now(),
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	return nil
}

func (p *NatsPublisher) PublishBuildDeleted(buildID, userID uuid.UUID) error {
	event := BuildDeletedEvent{
		EventType: "build.deleted",
		BuildID:   buildID,
		UserID:    userID,
		DeletedAt: time.Now(),
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		return err
	}

	subject := "build.deleted"
	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)

		return err
	}

	return nil
}
