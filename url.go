package reactor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPort is used when a Url omits an explicit port.
const DefaultPort = 5672

// DefaultScheme is used when a Url omits an explicit scheme.
const DefaultScheme = "amqp"

// Url is a parsed AMQP address: [scheme://][user[/password]@](host4|[host6])[:port].
// String() round-trips every address matching the grammar (spec.md §3,
// §6; testable property 6).
type Url struct {
	Scheme   string
	User     string
	Password string
	Host     string
	Port     int

	// hadScheme/hadPort track whether the original string supplied them
	// explicitly, so String() omits exactly what the input omitted
	// rather than always filling in the defaults.
	hadScheme bool
	hadPort   bool
}

// ParseURL parses s against the address grammar.
func ParseURL(s string) (Url, error) {
	u := Url{Scheme: DefaultScheme, Port: DefaultPort}
	rest := s

	if i := strings.Index(rest, "://"); i >= 0 {
		u.Scheme = rest[:i]
		u.hadScheme = true
		rest = rest[i+3:]
	}

	if i := strings.LastIndex(rest, "@"); i >= 0 {
		cred := rest[:i]
		rest = rest[i+1:]
		if j := strings.Index(cred, "/"); j >= 0 {
			u.User = cred[:j]
			u.Password = cred[j+1:]
		} else {
			u.User = cred
		}
	}

	host := rest
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return Url{}, errors.Errorf("reactor: malformed IPv6 host in url %q", s)
		}
		u.Host = rest[1:end]
		tail := rest[end+1:]
		if strings.HasPrefix(tail, ":") {
			p, err := strconv.Atoi(tail[1:])
			if err != nil {
				return Url{}, errors.Wrapf(err, "reactor: malformed port in url %q", s)
			}
			u.Port = p
			u.hadPort = true
		}
		return u, nil
	}

	if i := strings.LastIndex(host, ":"); i >= 0 {
		p, err := strconv.Atoi(host[i+1:])
		if err != nil {
			return Url{}, errors.Wrapf(err, "reactor: malformed port in url %q", s)
		}
		u.Host = host[:i]
		u.Port = p
		u.hadPort = true
	} else {
		u.Host = host
	}
	if u.Host == "" {
		return Url{}, errors.Errorf("reactor: url %q has no host", s)
	}
	return u, nil
}

// String renders the url back in the grammar, reproducing exactly the
// fields the original string supplied (testable property 6).
func (u Url) String() string {
	var b strings.Builder
	if u.hadScheme {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	if u.User != "" {
		b.WriteString(u.User)
		if u.Password != "" {
			b.WriteString("/")
			b.WriteString(u.Password)
		}
		b.WriteString("@")
	}
	if strings.Contains(u.Host, ":") {
		b.WriteString("[")
		b.WriteString(u.Host)
		b.WriteString("]")
	} else {
		b.WriteString(u.Host)
	}
	if u.hadPort {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(u.Port))
	}
	return b.String()
}

// Urls is a restartable round-robin iterator over a list of addresses
// (spec.md §3, §6).
type Urls struct {
	list []Url
	next int
}

// NewUrls parses each of addrs as one address; an argument is not split
// on commas.
func NewUrls(addrs ...string) (*Urls, error) {
	u := &Urls{}
	for _, a := range addrs {
		p, err := ParseURL(a)
		if err != nil {
			return nil, err
		}
		u.list = append(u.list, p)
	}
	if len(u.list) == 0 {
		return nil, errors.New("reactor: empty url list")
	}
	return u, nil
}

// Next returns the next address, wrapping back to the start once
// exhausted.
func (u *Urls) Next() Url {
	v := u.list[u.next%len(u.list)]
	u.next++
	return v
}

func (u *Urls) String() string {
	parts := make([]string, len(u.list))
	for i, v := range u.list {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%v", parts)
}
