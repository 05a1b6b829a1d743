package registrar

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// APIパス
const (
	pathRegistrations = "/api/v1/registrations"
	pathRegistration  = "/api/v1/registrations/{imsi}"
)

// 登録結果
const (
	ResultSuccess   = "success"
	ResultChallenge = "challenge"
	ResultFailure   = "failure"
)
