package docstore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tbourn/mission-control/internal/domain"
)

type missionDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Status      string               `bson:"status"`
	Commander   string               `bson:"commander"`
	Incidents   []primitive.ObjectID `bson:"incidents"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type incidentDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	Mission     primitive.ObjectID `bson:"mission"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type idempotencyDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Key        string             `bson:"key"`
	Scope      string             `bson:"scope"`
	ResourceID string             `bson:"resource_id"`
	Status     int                `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	ExpiresAt  time.Time          `bson:"expires_at"`
}

func (d *missionDoc) toDomain() *domain.Mission {
	ids := make([]string, 0, len(d.Incidents))
	for _, oid := range d.Incidents {
		ids = append(ids, oid.Hex())
	}
	return &domain.Mission{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Status:      d.Status,
		Commander:   d.Commander,
		Incidents:   ids,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (d *incidentDoc) toDomain() *domain.Incident {
	return &domain.Incident{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		MissionID:   d.Mission.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (d *idempotencyDoc) toDomain() *domain.Idempotency {
	return &domain.Idempotency{
		ID:         d.ID.Hex(),
		Key:        d.Key,
		Scope:      d.Scope,
		ResourceID: d.ResourceID,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt.UTC(),
		ExpiresAt:  d.ExpiresAt.UTC(),
	}
}
