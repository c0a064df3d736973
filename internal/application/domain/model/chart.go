package model

// ChartPoint é um ponto de série no formato consumido pelos gráficos
type ChartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ChartSeries é a série de uma pergunta, na ordem de exibição
type ChartSeries struct {
	QuestionID int64        `json:"question_id"`
	Prefix     string       `json:"prefix,omitempty"`
	Question   string       `json:"question"`
	Data       []ChartPoint `json:"data"`
}
