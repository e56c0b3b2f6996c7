package uploads

// Kind distinguishes the two attachment roles.
type Kind string

const (
	KindResume    Kind = "resume"
	KindVideoFile Kind = "video_file"
)

// Attachment is a persisted upload. It is only ever returned after the
// content store has accepted the full body.
type Attachment struct {
	OriginalName string
	StoredName   string
	// Path is the content-store key, e.g. "uploads/1718000000000-cv.pdf".
	Path      string
	MimeType  string
	SizeBytes int64
	Kind      Kind
}
