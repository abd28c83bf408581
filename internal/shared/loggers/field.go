package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"

	FieldTargetURL   = "target_url"
	FieldClientIP    = "client_ip"
	FieldSegment     = "segment"
	FieldPeriod      = "period"
	FieldURLCount    = "url_count"
	FieldCountryCode = "country_code"
)
