package repository

import (
	"context"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// bookingRecord is the stored shape. Early deployments wrote a different
// field set (userId plus a free-text teacher name, no court or type), and
// those records may still sit in the store. The legacy fields are decoded
// alongside the current ones and folded into the canonical shape on read;
// writes emit the canonical shape only.
type bookingRecord struct {
	entities.Booking
	LegacyUserID  string `json:"userId,omitempty"`
	LegacyTeacher string `json:"teacher,omitempty"`
}

func (rec *bookingRecord) toBooking() entities.Booking {
	b := rec.Booking
	if b.StudentID == "" && rec.LegacyUserID != "" {
		b.StudentID = rec.LegacyUserID
	}
	if b.TeacherName == "" && rec.LegacyTeacher != "" {
		b.TeacherName = rec.LegacyTeacher
	}
	if b.Type == "" {
		b.Type = entities.BookingTypeIndividual
	}
	return b
}

func toBookingRecord(b entities.Booking) bookingRecord {
	return bookingRecord{Booking: b}
}

// BookingRepositoryImpl stores court reservations
type BookingRepositoryImpl struct {
	collection *kvstore.Collection[bookingRecord]
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.BookingRepository {
	seeds := seedBookings()
	records := make([]bookingRecord, len(seeds))
	for i, b := range seeds {
		records[i] = toBookingRecord(b)
	}
	return &BookingRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyBookings, records, log, notifier),
	}
}

func (r *BookingRepositoryImpl) GetAll(ctx context.Context) []entities.Booking {
	records := r.collection.Load(ctx)
	bookings := make([]entities.Booking, len(records))
	for i := range records {
		bookings[i] = records[i].toBooking()
	}
	return bookings
}

func (r *BookingRepositoryImpl) GetByID(ctx context.Context, id string) *entities.Booking {
	for _, rec := range r.collection.Load(ctx) {
		if rec.ID == id {
			b := rec.toBooking()
			return &b
		}
	}
	return nil
}

func (r *BookingRepositoryImpl) GetByDate(ctx context.Context, date string) []entities.Booking {
	var bookings []entities.Booking
	for _, rec := range r.collection.Load(ctx) {
		if b := rec.toBooking(); b.Date == date {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

func (r *BookingRepositoryImpl) GetByStudentID(ctx context.Context, studentID string) []entities.Booking {
	var bookings []entities.Booking
	for _, rec := range r.collection.Load(ctx) {
		if b := rec.toBooking(); b.StudentID == studentID {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

func (r *BookingRepositoryImpl) GetByTeacherID(ctx context.Context, teacherID string) []entities.Booking {
	var bookings []entities.Booking
	for _, rec := range r.collection.Load(ctx) {
		if b := rec.toBooking(); b.TeacherID == teacherID {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

func (r *BookingRepositoryImpl) Save(ctx context.Context, booking *entities.Booking) (*entities.Booking, error) {
	saved := *booking
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt == "" {
		saved.CreatedAt = entities.Now()
	}
	if saved.Status == "" {
		saved.Status = entities.BookingStatusPending
	}

	_, err := r.collection.Update(ctx, func(items []bookingRecord) ([]bookingRecord, error) {
		for i := range items {
			if items[i].ID == saved.ID {
				items[i] = toBookingRecord(saved)
				return items, nil
			}
		}
		return append(items, toBookingRecord(saved)), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error) {
	var updated *entities.Booking
	_, err := r.collection.Update(ctx, func(items []bookingRecord) ([]bookingRecord, error) {
		updated = nil
		for i := range items {
			if items[i].ID == id {
				// Rewriting through the canonical shape migrates any
				// legacy record the moment its status changes.
				b := items[i].toBooking()
				b.Status = status
				items[i] = toBookingRecord(b)
				updated = &b
				return items, nil
			}
		}
		return nil, entities.ErrBookingNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BookingRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []bookingRecord) ([]bookingRecord, error) {
		next := make([]bookingRecord, 0, len(items))
		for _, item := range items {
			if item.ID == id {
				continue
			}
			next = append(next, item)
		}
		removed = len(next) != len(items)
		return next, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (r *BookingRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
