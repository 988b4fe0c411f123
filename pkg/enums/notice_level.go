package enums

// NoticeLevel is the severity of a user-facing notification.
type NoticeLevel string

const (
	NoticeLevelInfo  NoticeLevel = "info"
	NoticeLevelError NoticeLevel = "error"
)

// String implements fmt.Stringer.
func (n NoticeLevel) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NoticeLevel.
func (n NoticeLevel) IsValid() bool {
	return n == NoticeLevelInfo || n == NoticeLevelError
}
