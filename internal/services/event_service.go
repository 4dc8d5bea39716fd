package services

import (
	"context"
	"fmt"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"gorm.io/datatypes"
)

type EventService struct {
	eventsRepo models.EventsRepo
	venuesRepo models.VenuesRepo
	userRepo   models.UserRepo
}

func NewEventService(eventsRepo models.EventsRepo, venuesRepo models.VenuesRepo, userRepo models.UserRepo) *EventService {
	return &EventService{
		eventsRepo: eventsRepo,
		venuesRepo: venuesRepo,
		userRepo:   userRepo,
	}
}

// Create validates a full event payload and stores it. Organizers create
// events for themselves; the organizer field defaults to the caller.
func (es *EventService) Create(ctx context.Context, actor *helpers.Principal, req *dto.EventRequest) (*models.Event, error) {
	if !actor.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		return nil, ErrForbidden
	}
	if req.Organizer == nil && actor.IsOrganizer() {
		id := actor.UserID
		req.Organizer = &id
	}
	if actor.IsOrganizer() && *req.Organizer != actor.UserID {
		return nil, ErrForbidden
	}

	event := &models.Event{
		Status: models.EventStatusUpcoming,
	}
	if err := es.bind(ctx, event, req, false); err != nil {
		return nil, err
	}
	if err := es.checkUnique(ctx, event); err != nil {
		return nil, err
	}

	if err := es.eventsRepo.CreateEvent(ctx, event); err != nil {
		return nil, es.translateWriteError(ctx, event, err)
	}
	return event, nil
}

func (es *EventService) List(ctx context.Context) ([]models.Event, error) {
	return es.eventsRepo.ListEvents(ctx)
}

func (es *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	event, err := es.eventsRepo.GetEventByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Update applies a PUT (partial false, every required field present) or a
// PATCH (partial true, absent fields keep their value).
func (es *EventService) Update(ctx context.Context, actor *helpers.Principal, id uint, req *dto.EventRequest, partial bool) (*models.Event, error) {
	if !actor.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		return nil, ErrForbidden
	}
	event, err := es.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !es.canManage(actor, event) {
		return nil, ErrForbidden
	}
	if actor.IsOrganizer() && req.Organizer != nil && *req.Organizer != actor.UserID {
		return nil, ErrForbidden
	}

	if err := es.bind(ctx, event, req, partial); err != nil {
		return nil, err
	}
	if err := es.checkUnique(ctx, event); err != nil {
		return nil, err
	}

	if err := es.eventsRepo.SaveEvent(ctx, event); err != nil {
		return nil, es.translateWriteError(ctx, event, err)
	}
	return event, nil
}

// Delete removes the event and, through the foreign key, its bookings.
func (es *EventService) Delete(ctx context.Context, actor *helpers.Principal, id uint) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		return ErrForbidden
	}
	event, err := es.Get(ctx, id)
	if err != nil {
		return err
	}
	if !es.canManage(actor, event) {
		return ErrForbidden
	}
	if err := es.eventsRepo.DeleteEvent(ctx, id); err != nil {
		if models.IsNotFound(err) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func (es *EventService) canManage(actor *helpers.Principal, event *models.Event) bool {
	return actor.IsAdmin() || actor.IsOwner(event.OrganizerID)
}

// bind validates req and copies every present field onto event. Field level
// problems are collected and returned together as FieldErrors.
func (es *EventService) bind(ctx context.Context, event *models.Event, req *dto.EventRequest, partial bool) error {
	trim(req.Title)
	trim(req.Description)

	errs := models.FieldErrors{}
	if !partial {
		for _, field := range req.Missing() {
			errs.Add(field, models.MsgRequired)
		}
	}
	errs.Merge(validate(req))

	if req.Title != nil && !errs.Has("title") {
		event.Title = *req.Title
	}
	if req.Description != nil && !errs.Has("description") {
		event.Description = *req.Description
	}
	if req.Category != nil && !errs.Has("category") {
		event.Category = models.Category(*req.Category)
	}
	if req.Status != nil && !errs.Has("status") {
		event.Status = models.EventStatus(*req.Status)
	}
	if req.Capacity != nil && !errs.Has("capacity") {
		event.Capacity = *req.Capacity
	}

	if req.Organizer != nil {
		organizer, err := es.userRepo.GetUserByID(ctx, *req.Organizer)
		switch {
		case models.IsNotFound(err):
			errs.Add("organizer", doesNotExist(*req.Organizer))
		case err != nil:
			return err
		case !(organizer.Role == models.RoleOrganizer || organizer.Role == models.RoleAdmin):
			errs.Add("organizer", "Selected user is not an organizer.")
		default:
			event.OrganizerID = organizer.ID
		}
	}

	if req.Venue.Set {
		if req.Venue.Null {
			event.VenueID = nil
		} else {
			venue, err := es.venuesRepo.GetVenueByID(ctx, req.Venue.Value)
			switch {
			case models.IsNotFound(err):
				errs.Add("venue", doesNotExist(req.Venue.Value))
			case err != nil:
				return err
			default:
				event.VenueID = &venue.ID
			}
		}
	}

	bindDate(errs, "start_date", req.StartDate, &event.StartDate)
	bindTime(errs, "start_time", req.StartTime, &event.StartTime)
	bindDate(errs, "end_date", req.EndDate, &event.EndDate)
	bindTime(errs, "end_time", req.EndTime, &event.EndTime)

	if req.TicketPrice != nil {
		if price, err := models.ParseMoney(string(*req.TicketPrice)); err != nil {
			errs.Add("ticket_price", err.Error())
		} else if price < 0 {
			errs.Add("ticket_price", models.ErrMoneyNegative.Error())
		} else {
			event.TicketPrice = price
		}
	}

	return errs.Err()
}

func bindDate(errs models.FieldErrors, field string, raw *string, dst *datatypes.Date) {
	if raw == nil {
		return
	}
	t, err := helpers.ParseDate(*raw)
	if err != nil {
		errs.Add(field, models.MsgDateFormat)
		return
	}
	*dst = datatypes.Date(t)
}

func bindTime(errs models.FieldErrors, field string, raw *string, dst *datatypes.Time) {
	if raw == nil {
		return
	}
	hour, minute, second, err := helpers.ParseClock(*raw)
	if err != nil {
		errs.Add(field, models.MsgTimeFormat)
		return
	}
	*dst = datatypes.NewTime(hour, minute, second, 0)
}

func (es *EventService) checkUnique(ctx context.Context, event *models.Event) error {
	taken, err := es.eventsRepo.EventTitleDateTaken(ctx, event.Title, event.StartDate, event.ID)
	if err != nil {
		return err
	}
	if taken {
		return models.NewFieldError(models.NonFieldErrors, msgEventUnique)
	}
	return nil
}

// translateWriteError turns constraint violations lost to a concurrent
// writer into the field errors the pre-checks would have reported.
func (es *EventService) translateWriteError(ctx context.Context, event *models.Event, err error) error {
	switch {
	case models.IsDuplicate(err):
		return models.NewFieldError(models.NonFieldErrors, msgEventUnique)
	case models.IsForeignKeyViolation(err):
		errs := models.FieldErrors{}
		if _, lookupErr := es.userRepo.GetUserByID(ctx, event.OrganizerID); models.IsNotFound(lookupErr) {
			errs.Add("organizer", doesNotExist(event.OrganizerID))
		}
		if event.VenueID != nil {
			if _, lookupErr := es.venuesRepo.GetVenueByID(ctx, *event.VenueID); models.IsNotFound(lookupErr) {
				errs.Add("venue", doesNotExist(*event.VenueID))
			}
		}
		if len(errs) == 0 {
			errs.Add(models.NonFieldErrors, "A referenced object no longer exists.")
		}
		return errs
	default:
		return fmt.Errorf("failed to save event: %w", err)
	}
}
