package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// All bot-managed events live on the user's primary calendar.
const primaryCalendarID = "primary"

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

// EventDetails represents a single Google Calendar event.
type EventDetails struct {
	ID          string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	HTMLLink    string
}

func parseGoogleEventTimes(item *calendar.Event, loc *time.Location) (time.Time, time.Time, bool, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		startDate, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		endDate, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return startDate, endDate, true, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, false, nil
}

func eventDetailsFromItem(item *calendar.Event, loc *time.Location) (EventDetails, error) {
	startTime, endTime, allDay, err := parseGoogleEventTimes(item, loc)
	if err != nil {
		return EventDetails{}, err
	}

	return EventDetails{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		StartTime:   startTime,
		EndTime:     endTime,
		AllDay:      allDay,
		HTMLLink:    item.HtmlLink,
	}, nil
}

// CreateEvent creates a new event on the primary calendar and returns the
// created event including its Google Calendar link.
func (c *Client) CreateEvent(input EventInput) (*EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	// RFC3339 format includes timezone offset, so Google Calendar can infer the timezone
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
		},
	}

	created, err := c.service.Events.Insert(primaryCalendarID, event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	details, err := eventDetailsFromItem(created, input.StartTime.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to parse created event: %w", err)
	}
	return &details, nil
}

// DeleteEvent deletes an event from the primary calendar
func (c *Client) DeleteEvent(eventID string) error {
	if c.service == nil {
		return fmt.Errorf("calendar service not initialized")
	}

	err := c.service.Events.Delete(primaryCalendarID, eventID).Do()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// ListUpcoming returns up to max upcoming events, soonest first.
func (c *Client) ListUpcoming(max int64) ([]EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if max <= 0 {
		max = 10
	}

	now := time.Now()
	events, err := c.service.Events.List(primaryCalendarID).
		TimeMin(now.Format(time.RFC3339)).
		MaxResults(max).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	result := make([]EventDetails, 0, len(events.Items))
	for _, item := range events.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}
		details, parseErr := eventDetailsFromItem(item, now.Location())
		if parseErr != nil {
			// Skip malformed events rather than failing the whole request.
			continue
		}
		result = append(result, details)
	}

	return result, nil
}

// ListEventsInRange returns events in a time window, soonest first, capped
// at max results.
func (c *Client) ListEventsInRange(timeMin, timeMax time.Time, max int64) ([]EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if timeMax.Before(timeMin) {
		return nil, fmt.Errorf("invalid range: time_max is before time_min")
	}
	if max <= 0 {
		max = 50
	}

	events, err := c.service.Events.List(primaryCalendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(max).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events in range: %w", err)
	}

	result := make([]EventDetails, 0, len(events.Items))
	for _, item := range events.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}
		details, parseErr := eventDetailsFromItem(item, timeMin.Location())
		if parseErr != nil {
			continue
		}
		result = append(result, details)
	}

	return result, nil
}
