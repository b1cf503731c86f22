// Package raspisan scrapes the IBI institute's legacy schedule portal.
//
// The portal renders everything server side as semi-structured HTML tables,
// so this package is mostly a pile of carefully ordered selectors and
// detect-and-strip text rules. All parsing entry points are pure functions
// over an input string, the Client only contributes the HTTP layer and the
// portal's sentinel-text short circuits.
package raspisan

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"ibiassist-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/raspisan")

// fixed sentences the portal inlines instead of an error code
const (
	sentinelNoData       = "Информации для отображения отчета не обнаружено! Измените период."
	sentinelPinMismatch  = "Введенная фамилия не соответствует пин коду!"
	sentinelNoConnection = "Соединение не установлено"
)

// dropdown container ids on the menu pages
const (
	levelListId   = "ucstep"
	groupListId   = "group"
	teacherListId = "teacher"
)

type Client struct {
	http *resty.Client
}

func NewClient(baseUrl string) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/raspisan/http")

	return &Client{http: client}, nil
}

func (c *Client) fetchMenu(ctx context.Context, query string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get("/raspisan/menu.php?" + query)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRetrieve, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("%w: status %d", ErrBadResponse, res.StatusCode())
	}

	html := res.String()
	if strings.Contains(html, sentinelNoConnection) {
		return "", ErrServersDown
	}
	return html, nil
}

// GetLevels fetches the education level dropdown.
func (c *Client) GetLevels(ctx context.Context) ([]BasicItem, error) {
	ctx, span := tracer.Start(ctx, "GetLevels")
	defer span.End()

	html, err := c.fetchMenu(ctx, "tmenu=1")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return ParseBasicList(levelListId, html), nil
}

// GetGroups fetches the group dropdown of one education level.
func (c *Client) GetGroups(ctx context.Context, levelId string) ([]BasicItem, error) {
	ctx, span := tracer.Start(ctx, "GetGroups")
	defer span.End()

	html, err := c.fetchMenu(ctx, "tmenu=12&cod="+levelId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return ParseBasicList(groupListId, html), nil
}

// GetTeachers fetches the teacher dropdown.
func (c *Client) GetTeachers(ctx context.Context) ([]BasicItem, error) {
	ctx, span := tracer.Start(ctx, "GetTeachers")
	defer span.End()

	html, err := c.fetchMenu(ctx, "tmenu=2&cod=")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return ParseBasicList(teacherListId, html), nil
}

type GetSchedulesRequest struct {
	// DD.MM.YYYY, the portal's form format
	DateFrom string
	DateTo   string
	GroupId  string
}

// GetSchedules posts the schedule report form and parses the resulting
// table. A period without data short-circuits to an empty result before any
// structural parsing happens.
func (c *Client) GetSchedules(ctx context.Context, req GetSchedulesRequest) ([]DayItem, error) {
	ctx, span := tracer.Start(ctx, "GetSchedules")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"exam":     "0",
			"formo":    "0",
			"allp":     "0",
			"hour":     "0",
			"datafrom": req.DateFrom,
			"dataend":  req.DateTo,
			"rtype":    "1",
			"group":    req.GroupId,
			"tuttabl":  "0",
		}).
		Post("/raspisan/rasp.php")
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrRetrieve, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("%w: status %d", ErrBadResponse, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	html := res.String()
	if strings.Contains(html, sentinelNoData) {
		return nil, nil
	}

	days, err := ParseScheduleTable(html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return days, nil
}

// GetGrades posts the grade report form for a student identified by last
// name and pin code and parses the per-semester tables.
func (c *Client) GetGrades(ctx context.Context, lastName, pin string) ([SemesterCount][]GradeItem, error) {
	ctx, span := tracer.Start(ctx, "GetGrades")
	defer span.End()

	var empty [SemesterCount][]GradeItem

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"rtype": "6",
			"fio1":  lastName,
			"pin1":  pin,
		}).
		Post("/raspisan/rasp.php")
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrRetrieve, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return empty, err
	}
	if res.IsError() {
		err = fmt.Errorf("%w: status %d", ErrBadResponse, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return empty, err
	}

	html := res.String()
	if strings.Contains(html, sentinelPinMismatch) {
		span.SetStatus(codes.Error, ErrDataMismatch.Error())
		return empty, ErrDataMismatch
	}

	semesters, err := ParseGradeTable(html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return empty, err
	}
	return semesters, nil
}
