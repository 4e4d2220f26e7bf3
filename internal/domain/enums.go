package domain

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// TaskStatus classifies a task relative to a reference day.
type TaskStatus string

const (
	StatusCompleted TaskStatus = "completed"
	StatusCurrent   TaskStatus = "current"
	StatusFuture    TaskStatus = "future"
)

// AllStatuses lists the status categories in legend order.
var AllStatuses = []TaskStatus{StatusCompleted, StatusCurrent, StatusFuture}

// ChartStyle names a rendering backend for the task list.
type ChartStyle string

const (
	ChartMermaid  ChartStyle = "mermaid"
	ChartGoogle   ChartStyle = "google-charts"
	ChartTerminal ChartStyle = "terminal"
)

// ValidChartStyles is the canonical set of accepted chart style strings.
var ValidChartStyles = map[string]bool{
	string(ChartMermaid):  true,
	string(ChartGoogle):   true,
	string(ChartTerminal): true,
}
