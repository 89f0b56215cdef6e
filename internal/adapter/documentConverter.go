package adapter

import (
	"github.com/fintihlupik/LLM-RAG-Agents/internal/analysis"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/api"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
)

const uploadSuccessMessage = "File uploaded successfully"

func ToDocumentResponse(doc documentModel.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:           doc.Id,
		OriginalName: doc.OriginalName,
		StoredName:   doc.StoredName,
		Type:         string(doc.Kind),
		Extension:    doc.Extension,
		ContentType:  doc.ContentType,
		SizeBytes:    doc.SizeBytes,
		Path:         doc.Path,
		UploadedAt:   doc.UploadedAt,
		SHA256:       doc.SHA256,
	}
}

func ToUploadResponse(doc documentModel.Document) api.UploadResponse {
	return api.UploadResponse{
		Message:  uploadSuccessMessage,
		Document: ToDocumentResponse(doc),
	}
}

func ToListResponse(listing documentModel.Listing) api.DocumentListResponse {
	docs := make([]api.DocumentResponse, 0, len(listing.Documents))
	for _, d := range listing.Documents {
		docs = append(docs, ToDocumentResponse(d))
	}
	byType := make(map[string]int, len(listing.ByType))
	for kind, count := range listing.ByType {
		byType[string(kind)] = count
	}
	return api.DocumentListResponse{
		Documents: docs,
		Total:     listing.Total,
		ByType:    byType,
	}
}

func ToSummarizeResponse(s analysis.Summary) api.SummarizeResponse {
	return api.SummarizeResponse{
		Filename:       s.Filename,
		OriginalLength: s.OriginalLength,
		Truncated:      s.Truncated,
		Summary:        s.Summary,
		SummaryHTML:    s.SummaryHTML,
		SummaryLength:  s.SummaryLength,
		ModelUsed:      s.ModelUsed,
		Company:        s.Company,
		Year:           s.Year,
	}
}

func ToCompareResponse(c analysis.Comparison) api.CompareResponse {
	return api.CompareResponse{
		FirstFilename:  c.FirstFilename,
		SecondFilename: c.SecondFilename,
		Comparison:     c.Comparison,
		ComparisonHTML: c.ComparisonHTML,
		ModelUsed:      c.ModelUsed,
	}
}

func ErrorEnvelope(code int, message string, traceID string) api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.ErrorBody{
			Code:    code,
			Message: message,
			TraceID: traceID,
		},
	}
}
