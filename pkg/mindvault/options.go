package mindvault

import "time"

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	host     string
	port     int
	clientID string
	timeout  time.Duration
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		host:     "localhost",
		port:     7432,
		clientID: DefaultClientID,
		timeout:  30 * time.Second,
	}
}

// WithHost sets the server host.
func WithHost(host string) ClientOption {
	return func(c *clientConfig) {
		c.host = host
	}
}

// WithPort sets the server port.
func WithPort(port int) ClientOption {
	return func(c *clientConfig) {
		c.port = port
	}
}

// WithClientID sets the value of the X-MindVault-Client header.
func WithClientID(id string) ClientOption {
	return func(c *clientConfig) {
		c.clientID = id
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// TaskOption sets a field of a created or updated task. Values are literals
// the server parses, such as "urgent", "in progress" or "28/07/2025".
type TaskOption func(*taskFields)

type taskFields struct {
	Priority *string `json:"priority,omitempty"`
	Status   *string `json:"status,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

func newTaskFields(opts []TaskOption) taskFields {
	var f taskFields
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// WithPriority sets the task priority.
func WithPriority(priority string) TaskOption {
	return func(f *taskFields) {
		f.Priority = &priority
	}
}

// WithStatus sets the task status.
func WithStatus(status string) TaskOption {
	return func(f *taskFields) {
		f.Status = &status
	}
}

// WithDueDate sets the task due date.
func WithDueDate(date string) TaskOption {
	return func(f *taskFields) {
		f.DueDate = &date
	}
}

// SearchOption adds a filter to a search.
type SearchOption func(*searchFilters)

type searchFilters struct {
	query    string
	status   string
	priority string
	dueDate  string
}

func newSearchFilters(opts []SearchOption) searchFilters {
	var s searchFilters
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// MatchName keeps tasks whose name contains text, ignoring case.
func MatchName(text string) SearchOption {
	return func(s *searchFilters) {
		s.query = text
	}
}

// MatchStatus keeps tasks in status.
func MatchStatus(status string) SearchOption {
	return func(s *searchFilters) {
		s.status = status
	}
}

// MatchPriority keeps tasks with priority.
func MatchPriority(priority string) SearchOption {
	return func(s *searchFilters) {
		s.priority = priority
	}
}

// MatchDueDate keeps tasks due on the given day.
func MatchDueDate(date string) SearchOption {
	return func(s *searchFilters) {
		s.dueDate = date
	}
}
