package services

import (
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

// Resource describes one REST collection and the quirks of its store.
type Resource struct {
	// Name is the path segment under /api and the activity resource.
	Name string
	// Singular is used in activity titles ("New skill added").
	Singular string
	// FileFields switch writes to multipart when they hold a models.File.
	FileFields []string
	// SkipIfLoaded makes FetchAll a no-op once loaded, unless forced.
	SkipIfLoaded bool
	// SortIDDesc orders the fetched collection by id, newest first.
	SortIDDesc bool
	// Paginated stores read pagination from list responses.
	Paginated bool
	// Cached stores keep an LRU of list responses keyed by page and filters.
	Cached bool
	// Rules are validator tags checked before create; updates check only
	// the fields they carry.
	Rules map[string]any

	query func(q models.ListQuery) url.Values
}

func (r Resource) path(id string) string {
	if id == "" {
		return "/api/" + r.Name
	}
	return "/api/" + r.Name + "/" + url.PathEscape(id)
}

func (r Resource) Query(q models.ListQuery) url.Values {
	if r.query == nil {
		return nil
	}
	return r.query(q)
}

// nameSorted is the default query of the small reference lists.
func nameSorted(q models.ListQuery) url.Values {
	perPage, sortBy := 100, "name"
	if q.PerPage > 0 {
		perPage = q.PerPage
	}
	if q.SortBy != "" {
		sortBy = q.SortBy
	}
	return url.Values{
		"_per_page": {strconv.Itoa(perPage)},
		"sortBy":    {sortBy},
	}
}

func userQuery(q models.ListQuery) url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	v := url.Values{"page": {strconv.Itoa(page)}}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Email != "" {
		v.Set("email", q.Email)
	}
	return v
}

var nameRules = map[string]any{"name": "required,max=255"}

var (
	Skills = Resource{
		Name: "skills", Singular: "skill",
		Rules: nameRules,
		query: nameSorted,
	}
	Schools = Resource{
		Name: "schools", Singular: "school",
		Rules: nameRules,
		query: nameSorted,
	}
	Degrees = Resource{
		Name: "degrees", Singular: "degree",
		Rules: nameRules,
		query: nameSorted,
	}
	Subjects = Resource{
		Name: "subjects", Singular: "subject",
		Rules: nameRules,
		query: nameSorted,
	}
	Categories = Resource{
		Name: "categories", Singular: "category",
		FileFields:   []string{"image"},
		SkipIfLoaded: true,
		SortIDDesc:   true,
		Rules:        nameRules,
	}
	Users = Resource{
		Name: "users", Singular: "user",
		FileFields: []string{"avatar", "cover"},
		Paginated:  true,
		Cached:     true,
		Rules: map[string]any{
			"name":  "required,max=255",
			"email": "required,email",
		},
		query: userQuery,
	}
)

// AllResources lists every resource in dashboard order.
func AllResources() []Resource {
	return []Resource{Skills, Schools, Degrees, Subjects, Categories, Users}
}

// ResourceByName looks a resource up by its plural or singular name.
func ResourceByName(name string) (Resource, bool) {
	for _, r := range AllResources() {
		if r.Name == name || r.Singular == name {
			return r, true
		}
	}
	return Resource{}, false
}
