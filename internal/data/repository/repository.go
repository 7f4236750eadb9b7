package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tenant        TenantRepository
	BusinessHours BusinessHoursRepository
	Service       ServiceRepository
	Client        ClientRepository
	Appointment   AppointmentRepository
	Session       SessionRepository
	Audit         AuditRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tenant:        NewTenantRepository(db, log),
		BusinessHours: NewBusinessHoursRepository(db, log),
		Service:       NewServiceRepository(db, log),
		Client:        NewClientRepository(db, log),
		Appointment:   NewAppointmentRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Audit:         NewAuditRepository(db, log),
	}
}
