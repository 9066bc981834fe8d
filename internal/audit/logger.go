package audit

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// Logger persists audit events as models.AuditLog rows.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ev Event) error {
	row := models.AuditLog{
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Email:      ev.Email,
		DoctorName: ev.DoctorName,
		TimeSlot:   ev.TimeSlot,
		Metadata:   encodeMetadata(ev.Metadata),
	}

	return l.db.Create(&row).Error
}

// LogSink writes audit events to the application log. Used when no audit
// database is configured.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("audit")}
}

func (s *LogSink) Record(ev Event) error {
	fields := []zap.Field{
		zap.String("entity", ev.Entity),
		zap.String("email", ev.Email),
		zap.String("doctor", ev.DoctorName),
		zap.String("time_slot", ev.TimeSlot),
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.Uint("entity_id", *ev.EntityID))
	}
	if meta := encodeMetadata(ev.Metadata); meta != "" {
		fields = append(fields, zap.String("metadata", meta))
	}

	s.log.Info(ev.Action, fields...)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
