package domain

// NoticeVariant визуальный вариант уведомления в интерфейсе
type NoticeVariant string

const (
	NoticeSuccess     NoticeVariant = "success"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is the user-facing message produced for every scheduling decision
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

// IsError returns true if the notice reports a rejected change
func (n Notice) IsError() bool {
	return n.Variant == NoticeDestructive
}
