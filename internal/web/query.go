package web

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/JonMunkholm/gdgdash/internal/core"
	"github.com/JonMunkholm/gdgdash/internal/web/templates"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	academicYearTag = "academic_year"
	sortKeyTag      = "sort_key"
)

func init() {
	validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report query parameter names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("query")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(academicYearTag, func(fl validator.FieldLevel) bool {
		_, ok := core.ParseAcademicYear(fl.Field().String())
		return ok
	})
	_ = validate.RegisterValidation(sortKeyTag, func(fl validator.FieldLevel) bool {
		_, ok := core.ParseSortKey(fl.Field().String())
		return ok
	})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{academicYearTag, sortKeyTag} {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case academicYearTag:
		return fmt.Sprintf("%s must be one of All Years, %s", fe.Field(), joinYears())
	case sortKeyTag:
		return fmt.Sprintf("%s must be one of name, email, education_level", fe.Field())
	default:
		return ""
	}
}

func joinYears() string {
	labels := make([]string, len(core.YearLabels))
	for i, y := range core.YearLabels {
		labels[i] = string(y)
	}
	return strings.Join(labels, ", ")
}

// rosterQuery is the filter state shared by the roster pages and APIs.
type rosterQuery struct {
	Search       string   `query:"q" validate:"max=200"`
	Education    []string `query:"education" validate:"max=50,dive,max=200"`
	EducationSet bool     `query:"education_set"`
	Year         string   `query:"year" validate:"omitempty,academic_year"`
	Sort         string   `query:"sort" validate:"omitempty,sort_key"`
}

type chartQuery struct {
	Chart string `query:"chart" validate:"omitempty,oneof=year education domain gender"`
}

type emailsQuery struct {
	List string `query:"list" validate:"omitempty,oneof=university members"`
}

func parseRosterQuery(q url.Values) rosterQuery {
	return rosterQuery{
		Search:       q.Get("q"),
		Education:    nonEmpty(q["education"]),
		EducationSet: q.Get("education_set") != "",
		Year:         q.Get("year"),
		Sort:         q.Get("sort"),
	}
}

// nonEmpty drops blank values. It returns an empty non-nil slice so an
// explicit selection of nothing stays distinguishable from no selection.
func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// readRosterQuery parses and validates the roster filters of r. An
// absent sort falls back to defaultSort.
func readRosterQuery(r *http.Request, defaultSort core.SortKey) (templates.Filter, error) {
	q := parseRosterQuery(r.URL.Query())
	if err := validateQuery(q); err != nil {
		return templates.Filter{}, err
	}
	return q.filter(defaultSort), nil
}

func readAnalyticsQuery(r *http.Request) (templates.Filter, string, error) {
	f, err := readRosterQuery(r, core.SortNone)
	if err != nil {
		return templates.Filter{}, "", err
	}
	q := chartQuery{Chart: r.URL.Query().Get("chart")}
	if err := validateQuery(q); err != nil {
		return templates.Filter{}, "", err
	}
	if q.Chart == "" {
		q.Chart = templates.ChartYear
	}
	return f, q.Chart, nil
}

func readEmailsQuery(r *http.Request) (string, error) {
	q := emailsQuery{List: r.URL.Query().Get("list")}
	if err := validateQuery(q); err != nil {
		return "", err
	}
	if q.List == "" {
		q.List = listUniversity
	}
	return q.List, nil
}

// filter converts validated parameters into the view state.
func (q rosterQuery) filter(defaultSort core.SortKey) templates.Filter {
	f := templates.Filter{Search: q.Search, Sort: defaultSort}
	if q.EducationSet || len(q.Education) > 0 {
		f.Education = q.Education
	}
	if year, ok := core.ParseAcademicYear(q.Year); ok && year != core.AllYears {
		f.Year = year
	}
	if q.Sort != "" {
		f.Sort, _ = core.ParseSortKey(q.Sort)
	}
	return f
}

// viewOptions maps a filter onto the core view.
func viewOptions(f templates.Filter) core.ViewOptions {
	return core.ViewOptions{
		Education: f.Education,
		Year:      f.Year,
		Search:    f.Search,
		SortBy:    f.Sort,
	}
}

// validateQuery runs the struct validator and wraps failures in
// core.ErrInvalidQuery with one translated message per field.
func validateQuery(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", core.ErrInvalidQuery, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", core.ErrInvalidQuery, strings.Join(msgs, "; "))
}
