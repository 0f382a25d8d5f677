package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued        JobStatus = "QUEUED"
	JobStatusRunning       JobStatus = "RUNNING"
	JobStatusOCROK         JobStatus = "OCR_OK"         // stage 1 completed (text extracted)
	JobStatusOCRFailed     JobStatus = "OCR_FAILED"     // stage 1 terminal failure
	JobStatusExtractOK     JobStatus = "EXTRACT_OK"     // stage 2 completed (record built)
	JobStatusExtractFailed JobStatus = "EXTRACT_FAILED" // stage 2 terminal failure
)

// Terminal reports whether no further stage will run for the job.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusOCRFailed, JobStatusExtractOK, JobStatusExtractFailed:
		return true
	}
	return false
}

// LetterStatus is the workflow state of a letter. Extraction only ever produces LetterStatusPending.
type LetterStatus string

const LetterStatusPending LetterStatus = "pending"
