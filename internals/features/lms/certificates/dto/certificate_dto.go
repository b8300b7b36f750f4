package dto

type SaveCertificateRequest struct {
	CertificateURL string `json:"certificate_url" validate:"required,url"`
}

// UploadCertificateRequest membawa artefak sertifikat hasil render di
// client sebagai data URI base64.
type UploadCertificateRequest struct {
	ExamID           string `json:"exam_id" validate:"required,uuid"`
	CertificateImage string `json:"certificate_image" validate:"required"`
}
