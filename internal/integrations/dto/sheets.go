package dto

type SheetEmployee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type SheetGoal struct {
	Title    string  `json:"title"`
	Target   float64 `json:"target"`
	Progress float64 `json:"progress"`
}

type SheetCompetency struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type SheetFeedback struct {
	Author  string `json:"author"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// SheetSnapshot - все, что удалось прочитать из одной таблицы.
// Goals, Competencies и Feedbacks сгруппированы по id сотрудника.
type SheetSnapshot struct {
	SpreadsheetID string                       `json:"spreadsheetId"`
	Employees     []SheetEmployee              `json:"employees"`
	Goals         map[string][]SheetGoal       `json:"goals"`
	Competencies  map[string][]SheetCompetency `json:"competencies"`
	Feedbacks     map[string][]SheetFeedback   `json:"feedbacks"`
}
