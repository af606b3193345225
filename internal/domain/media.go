package domain

type Media struct {
	ID          string `json:"id"`
	ImagePath   string `json:"imagePath"`
	ProductID   string `json:"productId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
	UploadedBy  string `json:"uploadedBy"`
	CreatedAt   string `json:"createdAt"`
}
