package dto

// MediaFile is a candidate upload as received from the presentation
// layer. Size and ContentType are what the intake classification runs
// on; Content is only touched once the file has been accepted.
type MediaFile struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}
