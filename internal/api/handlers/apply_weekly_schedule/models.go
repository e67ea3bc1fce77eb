package apply_weekly_schedule

import (
	"github.com/v1adych/SWB-OrderService/internal/domain"
	applyWeeklySchedule "github.com/v1adych/SWB-OrderService/internal/usecase/apply_weekly_schedule"
)

// DayTemplateRequest шаблон одного дня в HTTP запросе
type DayTemplateRequest struct {
	Enabled   bool   `json:"enabled"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// ApplyScheduleRequest HTTP request model
type ApplyScheduleRequest struct {
	Location        string             `json:"location"`
	Capacity        int                `json:"capacity"`
	DeadlineMinutes int                `json:"deadlineMinutes"`
	Monday          DayTemplateRequest `json:"monday"`
	Tuesday         DayTemplateRequest `json:"tuesday"`
	Wednesday       DayTemplateRequest `json:"wednesday"`
	Thursday        DayTemplateRequest `json:"thursday"`
	Friday          DayTemplateRequest `json:"friday"`
	Saturday        DayTemplateRequest `json:"saturday"`
	Sunday          DayTemplateRequest `json:"sunday"`
}

// DayReportResponse результат применения шаблона к одной дате
type DayReportResponse struct {
	Weekday       string `json:"weekday"`
	Date          string `json:"date"`
	Action        string `json:"action"`
	SlotsCreated  int    `json:"slotsCreated,omitempty"`
	OrdersDeleted int    `json:"ordersDeleted,omitempty"`
}

// ApplyScheduleResponse HTTP response model
type ApplyScheduleResponse struct {
	Days          []DayReportResponse `json:"days"`
	DaysCreated   int                 `json:"daysCreated"`
	DaysDeleted   int                 `json:"daysDeleted"`
	OrdersDeleted int                 `json:"ordersDeleted"`
}

func (d DayTemplateRequest) toUseCaseTemplate() applyWeeklySchedule.DayTemplate {
	return applyWeeklySchedule.DayTemplate{
		Enabled:   d.Enabled,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
	}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyScheduleRequest) ToUseCaseRequest() *applyWeeklySchedule.Request {
	return &applyWeeklySchedule.Request{
		Location:        r.Location,
		Capacity:        r.Capacity,
		DeadlineMinutes: r.DeadlineMinutes,
		Monday:          r.Monday.toUseCaseTemplate(),
		Tuesday:         r.Tuesday.toUseCaseTemplate(),
		Wednesday:       r.Wednesday.toUseCaseTemplate(),
		Thursday:        r.Thursday.toUseCaseTemplate(),
		Friday:          r.Friday.toUseCaseTemplate(),
		Saturday:        r.Saturday.toUseCaseTemplate(),
		Sunday:          r.Sunday.toUseCaseTemplate(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyWeeklySchedule.Response) *ApplyScheduleResponse {
	days := make([]DayReportResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		days = append(days, DayReportResponse{
			Weekday:       day.Weekday,
			Date:          day.Date.Format(domain.DateFormat),
			Action:        day.Action,
			SlotsCreated:  day.SlotsCreated,
			OrdersDeleted: day.OrdersDeleted,
		})
	}

	return &ApplyScheduleResponse{
		Days:          days,
		DaysCreated:   resp.DaysCreated,
		DaysDeleted:   resp.DaysDeleted,
		OrdersDeleted: resp.OrdersDeleted,
	}
}
