package repositories

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/studysphere/backend/internal/app/models"
)

func listCountBase() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("count(*)").From("resources r")
}

func strPtr(s string) *string                       { return &s }
func intPtr(i int) *int                             { return &i }
func typePtr(t models.ResourceType) *models.ResourceType { return &t }

func TestResourceFilterPredicates(t *testing.T) {
	tests := []struct {
		name       string
		params     GetAllResourcesParams
		wantSQL    []string
		notWantSQL []string
		wantArgs   []interface{}
	}{
		{
			name:       "no filters",
			params:     GetAllResourcesParams{},
			notWantSQL: []string{"WHERE"},
			wantArgs:   []interface{}{},
		},
		{
			name:       "branch alone is an exact equality predicate",
			params:     GetAllResourcesParams{Branch: strPtr("Computer Science")},
			wantSQL:    []string{"r.branch = $1"},
			notWantSQL: []string{"ILIKE"},
			wantArgs:   []interface{}{"Computer Science"},
		},
		{
			name: "all equality filters are conjunctive and exact",
			params: GetAllResourcesParams{
				Type:     typePtr(models.ResourceNote),
				Branch:   strPtr("Computer Science"),
				Year:     intPtr(2),
				Semester: intPtr(4),
				Subject:  strPtr("DBMS"),
			},
			wantSQL: []string{
				"r.resource_type = $1",
				"r.branch = $2",
				"r.year = $3",
				"r.semester = $4",
				"r.subject = $5",
			},
			notWantSQL: []string{"ILIKE"},
			wantArgs:   []interface{}{models.ResourceNote, "Computer Science", 2, 4, "DBMS"},
		},
		{
			name:    "search matches title or description case-insensitively",
			params:  GetAllResourcesParams{Search: strPtr("graph")},
			wantSQL: []string{"(r.title ILIKE $1 OR r.description ILIKE $2)"},
			wantArgs: []interface{}{"%graph%", "%graph%"},
		},
		{
			name: "search does not loosen the branch predicate",
			params: GetAllResourcesParams{
				Branch: strPtr("Computer Science"),
				Search: strPtr("graph"),
			},
			wantSQL:    []string{"r.branch = $1", "r.title ILIKE $2", "r.description ILIKE $3"},
			notWantSQL: []string{"r.branch ILIKE"},
			wantArgs:   []interface{}{"Computer Science", "%graph%", "%graph%"},
		},
		{
			name: "empty search and subject add no predicate",
			params: GetAllResourcesParams{
				Branch:  strPtr("Computer Science"),
				Subject: strPtr(""),
				Search:  strPtr(""),
			},
			wantSQL:  []string{"r.branch = $1"},
			wantArgs: []interface{}{"Computer Science"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlStr, args, err := applyResourceFilters(listCountBase(), tt.params).ToSql()
			if err != nil {
				t.Fatalf("ToSql() error = %v", err)
			}

			for _, want := range tt.wantSQL {
				if !strings.Contains(sqlStr, want) {
					t.Errorf("SQL %q missing predicate %q", sqlStr, want)
				}
			}
			for _, notWant := range tt.notWantSQL {
				if strings.Contains(sqlStr, notWant) {
					t.Errorf("SQL %q must not contain %q", sqlStr, notWant)
				}
			}
			if len(tt.wantArgs) == 0 {
				if len(args) != 0 {
					t.Errorf("args = %#v, want none", args)
				}
			} else if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestResourceEmptySearchEqualsBranchOnly(t *testing.T) {
	branch := "Electronics"
	withEmptySearch := GetAllResourcesParams{Branch: &branch, Search: strPtr("")}
	branchOnly := GetAllResourcesParams{Branch: &branch}

	gotSQL, gotArgs, err := applyResourceFilters(listCountBase(), withEmptySearch).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	wantSQL, wantArgs, err := applyResourceFilters(listCountBase(), branchOnly).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	if gotSQL != wantSQL {
		t.Errorf("empty search changed the query: got %q, want %q", gotSQL, wantSQL)
	}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Errorf("empty search changed the args: got %#v, want %#v", gotArgs, wantArgs)
	}
}

func TestChatMessagesQueryWindow(t *testing.T) {
	repo := NewChatRepository(nil)

	sqlStr, args, err := repo.buildMessagesQuery(nil, 50)
	if err != nil {
		t.Fatalf("buildMessagesQuery() error = %v", err)
	}
	if !strings.Contains(sqlStr, "ORDER BY m.created_at DESC, m.id DESC") {
		t.Errorf("SQL %q must order the window newest-first", sqlStr)
	}
	if !strings.Contains(sqlStr, "LIMIT 50") {
		t.Errorf("SQL %q must carry the window limit", sqlStr)
	}
	if strings.Contains(sqlStr, "WHERE") {
		t.Errorf("SQL %q must have no window bound when before is nil", sqlStr)
	}
	if len(args) != 0 {
		t.Errorf("args = %#v, want none", args)
	}

	before := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sqlStr, args, err = repo.buildMessagesQuery(&before, 20)
	if err != nil {
		t.Fatalf("buildMessagesQuery() error = %v", err)
	}
	if !strings.Contains(sqlStr, "m.created_at < $1") {
		t.Errorf("SQL %q must bound the window strictly before the cursor", sqlStr)
	}
	if !strings.Contains(sqlStr, "LIMIT 20") {
		t.Errorf("SQL %q must carry the window limit", sqlStr)
	}
	if len(args) != 1 || args[0] != before {
		t.Errorf("args = %#v, want the cursor timestamp", args)
	}
}
