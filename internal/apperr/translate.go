package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// MySQL server error numbers this application depends on.
// Reference: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	MySQLAccessDenied       = 1045
	MySQLColumnCannotBeNull = 1048
	MySQLDuplicateEntry     = 1062
	MySQLSyntaxError        = 1064
	MySQLLockWaitTimeout    = 1205
	MySQLDeadlock           = 1213
	MySQLNoDefaultForField  = 1364
	MySQLRowIsReferenced    = 1451
	MySQLNoReferencedRow    = 1452
	MySQLServerGone         = 2013
)

type mapping struct {
	code Code
	kind DataAccessKind
}

type contextMapping struct {
	fragment   string
	vendorCode int
	code       Code
	kind       DataAccessKind
}

// Translator converts raw vendor failures into typed data-access errors.
// It holds two tables: a general vendor-code map and a set of
// operation-scoped overrides. Both are populated at startup; AddMapping and
// AddContextMapping are not safe to call concurrently with Translate.
type Translator struct {
	general map[int]mapping
	byOp    map[string]contextMapping
	ordered []contextMapping
}

// NewTranslator builds a translator preloaded with the MySQL vendor table
// and the operation overrides this application requires.
func NewTranslator() *Translator {
	t := &Translator{
		general: make(map[int]mapping),
		byOp:    make(map[string]contextMapping),
	}

	t.AddMapping(MySQLAccessDenied, CodeAuthInvalidCredentials, ResourceFailure)
	t.AddMapping(MySQLServerGone, CodeDBConnectionFailed, ResourceFailure)
	t.AddMapping(MySQLDuplicateEntry, CodeDBDuplicateEntry, IntegrityViolation)
	t.AddMapping(MySQLRowIsReferenced, CodeDBForeignKeyViolation, IntegrityViolation)
	t.AddMapping(MySQLNoReferencedRow, CodeDBForeignKeyViolation, IntegrityViolation)
	t.AddMapping(MySQLColumnCannotBeNull, CodeDBColumnIsNull, IntegrityViolation)
	t.AddMapping(MySQLNoDefaultForField, CodeDBColumnIsNull, IntegrityViolation)
	t.AddMapping(MySQLSyntaxError, CodeDBQueryError, GrammarError)
	t.AddMapping(MySQLDeadlock, CodeDBDeadlock, LockContention)
	t.AddMapping(MySQLLockWaitTimeout, CodeDBLockTimeout, LockContention)

	t.AddContextMapping("registration", MySQLDuplicateEntry, CodeUserAlreadyExists, IntegrityViolation)
	t.AddContextMapping("employee.create", MySQLDuplicateEntry, CodeEmployeeDuplicateID, IntegrityViolation)
	t.AddContextMapping("employee.delete", MySQLRowIsReferenced, CodeEmployeeHasDependencies, IntegrityViolation)

	return t
}

// AddMapping registers or overwrites a general vendor-code mapping.
func (t *Translator) AddMapping(vendorCode int, code Code, kind DataAccessKind) {
	t.general[vendorCode] = mapping{code: code, kind: kind}
}

// AddContextMapping registers an operation-scoped override. The override
// applies only when the operation name contains fragment (case-insensitive)
// AND the observed vendor code equals vendorCode.
func (t *Translator) AddContextMapping(fragment string, vendorCode int, code Code, kind DataAccessKind) {
	cm := contextMapping{
		fragment:   strings.ToLower(fragment),
		vendorCode: vendorCode,
		code:       code,
		kind:       kind,
	}
	if prev, ok := t.byOp[cm.fragment]; ok {
		for i := range t.ordered {
			if t.ordered[i].fragment == prev.fragment {
				t.ordered[i] = cm
				break
			}
		}
	} else {
		t.ordered = append(t.ordered, cm)
	}
	t.byOp[cm.fragment] = cm

	// Longest fragment first so that overlapping fragments registered for
	// the same vendor code resolve deterministically. Sorting here keeps
	// Translate free of writes, so the tables are a read-only snapshot
	// once startup configuration is done.
	sort.SliceStable(t.ordered, func(i, j int) bool {
		return len(t.ordered[i].fragment) > len(t.ordered[j].fragment)
	})
}

// Translate resolves a vendor failure against the mapping tables. Lookup
// order: exact operation-name override, longest matching fragment override,
// general vendor table, then an unclassified SYSTEM_ERROR fallback naming
// the operation. The vendor failure is retained as the cause in every case.
func (t *Translator) Translate(err error, ectx *ErrorContext) *DataAccessError {
	vendorCode, _ := VendorCode(err)
	operation := strings.ToLower(ectx.Operation)

	if cm, ok := t.matchContext(operation, vendorCode); ok {
		return &DataAccessError{
			Kind:    cm.kind,
			Code:    cm.code,
			Message: cm.code.DefaultMessage(),
			Cause:   err,
		}
	}

	if m, ok := t.general[vendorCode]; ok {
		return &DataAccessError{
			Kind:    m.kind,
			Code:    m.code,
			Message: fmt.Sprintf("%s during %s", m.code.DefaultMessage(), ectx.Operation),
			Cause:   err,
		}
	}

	return &DataAccessError{
		Kind:    UnclassifiedFailure,
		Code:    CodeSystemError,
		Message: fmt.Sprintf("%s during %s", CodeSystemError.DefaultMessage(), ectx.Operation),
		Cause:   err,
	}
}

func (t *Translator) matchContext(operation string, vendorCode int) (contextMapping, bool) {
	if cm, ok := t.byOp[operation]; ok && cm.vendorCode == vendorCode {
		return cm, true
	}
	for _, cm := range t.ordered {
		if strings.Contains(operation, cm.fragment) && cm.vendorCode == vendorCode {
			return cm, true
		}
	}
	return contextMapping{}, false
}
