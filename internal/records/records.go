package records

// Placeholder is shown for any field an import or form left blank.
const Placeholder = "--"

type JobStatus string

const (
	JobActive   JobStatus = "Active"
	JobInactive JobStatus = "Inactive"
)

type CallType string

const (
	CallIncoming CallType = "incoming"
	CallOutgoing CallType = "outgoing"
	CallMissed   CallType = "missed"
)

type CallStatus string

const (
	CallCompleted  CallStatus = "Completed"
	CallStatusMiss CallStatus = "Missed"
)

// Candidate.Client, JobTitle and Vendor are display copies, not references
// into the client or job collections.
type Candidate struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Client    string `json:"client" yaml:"client"`
	JobTitle  string `json:"jobTitle" yaml:"job_title"`
	Vendor    string `json:"vendor" yaml:"vendor"`
	CreatedAt string `json:"createdAt" yaml:"created_at"`
}

type Client struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Contact  string `json:"contact" yaml:"contact"`
	Company  string `json:"company" yaml:"company"`
	Category string `json:"category" yaml:"category"`
	Date     string `json:"date" yaml:"date"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

type Job struct {
	ID       int64     `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Category string    `json:"category" yaml:"category"`
	Posted   string    `json:"posted" yaml:"posted"`
	Status   JobStatus `json:"status" yaml:"status"`
}

type CallLog struct {
	ID        int64      `json:"id" yaml:"id"`
	Candidate string     `json:"candidate" yaml:"candidate"`
	Phone     string     `json:"phone" yaml:"phone"`
	Type      CallType   `json:"type" yaml:"type"`
	Duration  string     `json:"duration" yaml:"duration"`
	Status    CallStatus `json:"status" yaml:"status"`
	Date      string     `json:"date" yaml:"date"`
	Notes     string     `json:"notes" yaml:"notes"`
}

// ParseJobStatus only accepts the exact spelling "Active"; everything else
// is Inactive.
func ParseJobStatus(raw string) JobStatus {
	if raw == string(JobActive) {
		return JobActive
	}
	return JobInactive
}

func (t CallType) Valid() bool {
	switch t {
	case CallIncoming, CallOutgoing, CallMissed:
		return true
	default:
		return false
	}
}

func (s CallStatus) Valid() bool {
	return s == CallCompleted || s == CallStatusMiss
}

// Collection names one of the four entity collections.
type Collection string

const (
	Candidates Collection = "candidates"
	Clients    Collection = "clients"
	Jobs       Collection = "jobs"
	CallLogs   Collection = "call-logs"
)

var AllCollections = []Collection{Candidates, Clients, Jobs, CallLogs}

func ParseCollection(raw string) (Collection, bool) {
	switch Collection(raw) {
	case Candidates, Clients, Jobs, CallLogs:
		return Collection(raw), true
	case "calllogs", "call_logs":
		return CallLogs, true
	default:
		return "", false
	}
}
