package model

// Bar is one labelled bar of a bar chart
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BarChart describes a chart independently of how it is rendered.
type BarChart struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	XName string `json:"x_name"`
	YName string `json:"y_name"`
	Bars  []Bar  `json:"bars"`
}
