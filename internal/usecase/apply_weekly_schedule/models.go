package apply_weekly_schedule

import "time"

// DayTemplate шаблон одного дня недели
type DayTemplate struct {
	Enabled   bool   // Принимает ли точка заказы в этот день недели
	OpenTime  string // "HH:MM", кратно длительности слота
	CloseTime string // "HH:MM", кратно длительности слота
}

// Request недельный шаблон расписания
// Применяется только к будущим датам: на каждый день недели берется
// ближайшая дата строго после сегодняшней
type Request struct {
	Location        string // Точка выдачи
	Capacity        int    // Вместимость каждого слота
	DeadlineMinutes int    // За сколько минут до начала слота заказ блокируется

	Monday    DayTemplate
	Tuesday   DayTemplate
	Wednesday DayTemplate
	Thursday  DayTemplate
	Friday    DayTemplate
	Saturday  DayTemplate
	Sunday    DayTemplate
}

// Действия, примененные к дате шаблоном
const (
	ActionCreated   = "created"   // Рабочий день создан вместе со слотами
	ActionKept      = "kept"      // День уже существовал, не тронут
	ActionDeleted   = "deleted"   // День удален (деструктивно, с заказами)
	ActionUntouched = "untouched" // День выключен в шаблоне и не существовал
)

// DayReport результат применения шаблона к одной дате
type DayReport struct {
	Weekday      string
	Date         time.Time
	Action       string
	SlotsCreated int
	// OrdersDeleted количество заказов, удаленных каскадом вместе с днем.
	// Ненулевое значение — сигнал вызывающей стороне, что операция была деструктивной
	OrdersDeleted int
}

// Response отчет о применении недельного шаблона
type Response struct {
	Days          []DayReport
	DaysCreated   int
	DaysDeleted   int
	OrdersDeleted int
}

// weekdayTemplates возвращает дни шаблона в фиксированном порядке Monday..Sunday
func (r *Request) weekdayTemplates() []struct {
	Weekday  time.Weekday
	Template DayTemplate
} {
	return []struct {
		Weekday  time.Weekday
		Template DayTemplate
	}{
		{time.Monday, r.Monday},
		{time.Tuesday, r.Tuesday},
		{time.Wednesday, r.Wednesday},
		{time.Thursday, r.Thursday},
		{time.Friday, r.Friday},
		{time.Saturday, r.Saturday},
		{time.Sunday, r.Sunday},
	}
}
