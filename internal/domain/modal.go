package domain

type ModalKind string

const (
	ModalClosed        ModalKind = "closed"
	ModalEditProduct   ModalKind = "editing-product"
	ModalManagingMedia ModalKind = "managing-media"
)

// ModalState is the single overlay the dashboard may have open. The
// zero value is the closed state. Editing is nil when the product
// editor is open in create mode.
type ModalState struct {
	Kind         ModalKind
	Editing      *Product
	MediaProduct *Product
	MediaList    []Media
}

func ClosedModal() ModalState {
	return ModalState{Kind: ModalClosed}
}
