package documents

import "github.com/JaimeStill/pdf-chat/pkg/repository"

const columns = `file_id, user_id, filename, content_type, size_bytes, page_count, uploaded_at`

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.Ref,
		&d.UserID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.UploadedAt,
	)
	if err == nil {
		d.UploadedAt = d.UploadedAt.UTC()
	}
	return d, err
}
