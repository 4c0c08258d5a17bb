package email

// Email представляет одно исходящее письмо
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные, подставляемые в шаблон письма
type TemplateData struct {
	UserName   string
	ActionURL  string
	ActionText string
	Subject    string
	Message    string
	FromName   string
}
