// Package urls resolves symbolic route names into request paths.
package urls

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const (
	Home   = "news:home"
	Detail = "news:detail"
	Edit   = "news:edit"
	Delete = "news:delete"
	Login  = "users:login"
	Logout = "users:logout"
	Signup = "users:signup"

	// CommentsAnchor is the fragment of the comment list on a detail page.
	CommentsAnchor = "#comments"
)

// Required lists every route name the application registers.
var Required = []string{Home, Detail, Edit, Delete, Login, Logout, Signup}

// IDParam is the only path parameter handlers read.
const IDParam = "id"

// withID lists the routes addressed by an object id.
var withID = map[string]bool{Detail: true, Edit: true, Delete: true}

// Map maps route names to path templates. Path parameters are written as
// ":name" segments, e.g. "/news/:id/".
type Map map[string]string

func Default() Map {
	return Map{
		Home:   "/",
		Detail: "/news/:id/",
		Edit:   "/edit_comment/:id/",
		Delete: "/delete_comment/:id/",
		Login:  "/auth/login/",
		Logout: "/auth/logout/",
		Signup: "/auth/signup/",
	}
}

func (m Map) Validate() error {
	var missing []string
	for _, name := range Required {
		if strings.TrimSpace(m[name]) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("url map is missing routes: %s", strings.Join(missing, ", "))
	}

	var invalid []string
	for _, name := range Required {
		params := pathParams(m[name])
		want := 0
		if withID[name] {
			want = 1
		}
		if len(params) != want || (want == 1 && params[0] != IDParam) {
			invalid = append(invalid, fmt.Sprintf("%s %q", name, m[name]))
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("url map routes must use a single :%s parameter for %s, %s, %s and none elsewhere: %s",
			IDParam, Detail, Edit, Delete, strings.Join(invalid, ", "))
	}

	return nil
}

func pathParams(tmpl string) []string {
	var params []string
	for _, seg := range strings.Split(tmpl, "/") {
		if strings.HasPrefix(seg, ":") {
			params = append(params, strings.TrimPrefix(seg, ":"))
		}
	}
	return params
}

// Route returns the path template registered for name.
func (m Map) Route(name string) string {
	return m[name]
}

// Reverse fills the template of name with args in order of appearance.
func (m Map) Reverse(name string, args ...interface{}) (string, error) {
	tmpl, ok := m[name]
	if !ok {
		return "", fmt.Errorf("reverse %q: unknown route", name)
	}

	segments := strings.Split(tmpl, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("reverse %q: not enough arguments, got %d", name, len(args))
		}
		segments[i] = url.PathEscape(fmt.Sprint(args[next]))
		next++
	}

	if next != len(args) {
		return "", fmt.Errorf("reverse %q: too many arguments, want %d got %d", name, next, len(args))
	}

	return strings.Join(segments, "/"), nil
}

// LoginRedirect returns the login path carrying next as the "next" query
// parameter. Slashes stay unescaped: /auth/login/?next=/edit_comment/1/.
func (m Map) LoginRedirect(next string) string {
	return m.Route(Login) + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// DetailComments returns the comment list anchor of the news detail page.
func (m Map) DetailComments(newsID int) (string, error) {
	path, err := m.Reverse(Detail, newsID)
	if err != nil {
		return "", err
	}
	return path + CommentsAnchor, nil
}
