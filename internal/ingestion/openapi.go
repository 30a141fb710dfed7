package ingestion

import "github.com/JaimeStill/pdf-chat/pkg/openapi"

type spec struct {
	Upload *openapi.Operation
	List   *openapi.Operation
	Parse  *openapi.Operation
	Select *openapi.Operation
}

var Spec = spec{
	Upload: &openapi.Operation{
		Summary:     "Upload PDF",
		Description: "Store a PDF for the caller. Only application/pdf parts are accepted.",
		Security:    openapi.BearerAuth(),
		RequestBody: openapi.RequestBodyMultipart("file", "PDF file to upload"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("PDF uploaded", "UploadResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			413: {Description: "File too large"},
			415: {Description: "File is not a PDF"},
			500: openapi.ResponseRef("InternalError"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List PDFs",
		Description: "List the caller's uploads in upload order",
		Security:    openapi.BearerAuth(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Uploaded PDFs", "PDFListItem"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Parse: &openapi.Operation{
		Summary:     "Parse PDF",
		Description: "Extract the text of an uploaded PDF and store it for chat. Re-parsing replaces the stored text.",
		Security:    openapi.BearerAuth(),
		RequestBody: openapi.RequestBodyJSON("PDFRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("PDF parsed", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Select: &openapi.Operation{
		Summary:     "Select PDF",
		Description: "Make an uploaded PDF the active chat context. The PDF does not need to be parsed yet.",
		Security:    openapi.BearerAuth(),
		RequestBody: openapi.RequestBodyJSON("PDFRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("PDF selected", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"UploadResponse": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"file_id":  {Type: "string", Format: "uuid", Description: "Opaque PDF reference"},
				"filename": {Type: "string"},
				"message":  {Type: "string"},
			},
		},
		"PDFListItem": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"filename":    {Type: "string"},
				"upload_date": {Type: "string", Format: "date-time", Description: "UTC upload time, null when unknown"},
				"file_id":     {Type: "string", Format: "uuid"},
			},
		},
		"PDFRequest": {
			Type:     "object",
			Required: []string{"pdf_id"},
			Properties: map[string]*openapi.Property{
				"pdf_id": {Type: "string", Format: "uuid", Description: "file_id returned by upload"},
			},
		},
	}
}
