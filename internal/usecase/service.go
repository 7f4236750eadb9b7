package usecase

import (
	"salon-booking/internal/data/repository"
	"salon-booking/internal/queue"
	"salon-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Appointment  AppointmentService
	Public       PublicService
}

func NewService(repo *repository.Repository, redisClient *redis.Client, publisher *queue.Publisher, config *utils.Config, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, config, log)
	return &Service{
		Availability: availability,
		Appointment:  NewAppointmentService(repo, publisher, log),
		Public:       NewPublicService(repo, availability, redisClient, publisher, config, log),
	}
}
