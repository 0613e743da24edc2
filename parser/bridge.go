package parser

import (
	"encoding/json"
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/pgscope/pgscope/ast"
)

// bridgeParseResult converts a pg_query protobuf parse tree into the
// wire-format AST: every statement wrapped in a RawStmt, enum names
// replaced with their wire values, and value leaves reshaped to their
// tagged spellings.
func bridgeParseResult(parsed *pg_query.ParseResult) ([]*ast.Node, error) {
	marshaler := protojson.MarshalOptions{}

	stmts := make([]*ast.Node, 0, len(parsed.Stmts))
	for i, raw := range parsed.Stmts {
		if raw.Stmt == nil {
			continue
		}
		data, err := marshaler.Marshal(raw.Stmt)
		if err != nil {
			return nil, fmt.Errorf("failed to encode statement %d: %w", i, err)
		}

		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to decode statement %d: %w", i, err)
		}
		tree = normalizeTree(tree)

		wrapped, err := json.Marshal(map[string]any{
			"RawStmt": map[string]any{
				"stmt":          tree,
				"stmt_location": raw.StmtLocation,
				"stmt_len":      raw.StmtLen,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode statement %d: %w", i, err)
		}

		node := &ast.Node{}
		if err := json.Unmarshal(wrapped, node); err != nil {
			return nil, fmt.Errorf("failed to build AST for statement %d: %w", i, err)
		}
		stmts = append(stmts, node)
	}
	return stmts, nil
}

// normalizeTree rewrites a protobuf-JSON tree in place into the wire
// format.
func normalizeTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, child := range val {
			switch key {
			case "String":
				renameField(child, "sval", "str")
			case "Float":
				renameField(child, "fval", "str")
			case "BitString":
				renameField(child, "bsval", "str")
			case "A_Const":
				child = normalizeAConst(child)
				val[key] = child
			}
			val[key] = normalizeTree(val[key])
		}
		for key, child := range val {
			if name, ok := child.(string); ok && enumFieldNames[key] {
				val[key] = enumWireValue(name)
			}
		}
		return val
	case []any:
		for i := range val {
			val[i] = normalizeTree(val[i])
		}
		return val
	default:
		return v
	}
}

func renameField(payload any, from, to string) {
	m, ok := payload.(map[string]any)
	if !ok {
		return
	}
	if v, exists := m[from]; exists {
		m[to] = v
		delete(m, from)
	}
}

// normalizeAConst rewrites the constant's inline value slot into the tagged
// val field: {"sval": {...}} becomes {"val": {"String": {...}}}.
func normalizeAConst(payload any) any {
	m, ok := payload.(map[string]any)
	if !ok {
		return payload
	}

	slots := map[string]string{
		"ival":    "Integer",
		"fval":    "Float",
		"sval":    "String",
		"boolval": "Boolean",
		"bsval":   "BitString",
	}
	for slot, kind := range slots {
		inner, exists := m[slot]
		if !exists {
			continue
		}
		delete(m, slot)
		if inner == nil {
			inner = map[string]any{}
		}
		m["val"] = map[string]any{kind: inner}
		return m
	}
	if isnull, _ := m["isnull"].(bool); isnull {
		delete(m, "isnull")
		m["val"] = map[string]any{"Null": map[string]any{}}
	}
	return m
}

// enumFieldNames lists the payload fields that carry enumerations on the
// wire. Only these are eligible for name-to-value rewriting; everything
// else keeps its JSON value untouched.
var enumFieldNames = map[string]bool{
	"op":             true,
	"kind":           true,
	"boolop":         true,
	"jointype":       true,
	"sortby_dir":     true,
	"sortby_nulls":   true,
	"nulltesttype":   true,
	"booltesttype":   true,
	"subLinkType":    true,
	"contype":        true,
	"strength":       true,
	"waitPolicy":     true,
	"objtype":        true,
	"removeType":     true,
	"behavior":       true,
	"roletype":       true,
	"onCommit":       true,
	"oncommit":       true,
	"action":         true,
	"ctematerialized": true,
	"targtype":       true,
	"renameType":     true,
	"relationType":   true,
	"event":          true,
	"defaction":      true,
	"subtype":        true,
	"ordering":       true,
	"nulls_ordering": true,
	"row_format":     true,
}

// enumWireValue maps a protobuf enum value name to its wire value. Unknown
// names map to -1.
func enumWireValue(name string) int {
	if v, ok := enumWireValues[name]; ok {
		return v
	}
	return -1
}

// enumWireValues maps every enum value name the bridge understands to the
// wire contract's integer. Value names are globally unique across the
// parse-tree enums, so one flat table serves all fields.
var enumWireValues = map[string]int{
	// SetOperation
	"SETOP_NONE":      ast.SetOpNone,
	"SETOP_UNION":     ast.SetOpUnion,
	"SETOP_INTERSECT": ast.SetOpIntersect,
	"SETOP_EXCEPT":    ast.SetOpExcept,

	// BoolExprType
	"AND_EXPR": ast.BoolExprAnd,
	"OR_EXPR":  ast.BoolExprOr,
	"NOT_EXPR": ast.BoolExprNot,

	// A_Expr_Kind
	"AEXPR_OP":              ast.AExprOp,
	"AEXPR_OP_ANY":          ast.AExprOpAny,
	"AEXPR_OP_ALL":          ast.AExprOpAll,
	"AEXPR_DISTINCT":        ast.AExprDistinct,
	"AEXPR_NOT_DISTINCT":    ast.AExprNotDistinct,
	"AEXPR_NULLIF":          ast.AExprNullif,
	"AEXPR_IN":              ast.AExprIn,
	"AEXPR_LIKE":            ast.AExprLike,
	"AEXPR_ILIKE":           ast.AExprILike,
	"AEXPR_SIMILAR":         ast.AExprSimilar,
	"AEXPR_BETWEEN":         ast.AExprBetween,
	"AEXPR_NOT_BETWEEN":     ast.AExprNotBetween,
	"AEXPR_BETWEEN_SYM":     ast.AExprBetweenSym,
	"AEXPR_NOT_BETWEEN_SYM": ast.AExprNotBetweenSym,

	// JoinType
	"JOIN_INNER": ast.JoinInner,
	"JOIN_LEFT":  ast.JoinLeft,
	"JOIN_FULL":  ast.JoinFull,
	"JOIN_RIGHT": ast.JoinRight,

	// SortByDir / SortByNulls
	"SORTBY_DEFAULT":       ast.SortByDefault,
	"SORTBY_ASC":           ast.SortByAsc,
	"SORTBY_DESC":          ast.SortByDesc,
	"SORTBY_USING":         ast.SortByUsing,
	"SORTBY_NULLS_DEFAULT": ast.SortByNullsDefault,
	"SORTBY_NULLS_FIRST":   ast.SortByNullsFirst,
	"SORTBY_NULLS_LAST":    ast.SortByNullsLast,

	// NullTestType
	"IS_NULL":     ast.NullTestIsNull,
	"IS_NOT_NULL": ast.NullTestIsNotNull,

	// BoolTestType
	"IS_TRUE":        ast.BoolTestIsTrue,
	"IS_NOT_TRUE":    ast.BoolTestIsNotTrue,
	"IS_FALSE":       ast.BoolTestIsFalse,
	"IS_NOT_FALSE":   ast.BoolTestIsNotFalse,
	"IS_UNKNOWN":     ast.BoolTestIsUnknown,
	"IS_NOT_UNKNOWN": ast.BoolTestIsNotUnknown,

	// SubLinkType
	"EXISTS_SUBLINK":    ast.SubLinkExists,
	"ALL_SUBLINK":       ast.SubLinkAll,
	"ANY_SUBLINK":       ast.SubLinkAny,
	"ROWCOMPARE_SUBLINK": ast.SubLinkRowCompare,
	"EXPR_SUBLINK":      ast.SubLinkExpr,
	"MULTIEXPR_SUBLINK": ast.SubLinkMultiExpr,
	"ARRAY_SUBLINK":     ast.SubLinkArray,
	"CTE_SUBLINK":       ast.SubLinkCTE,

	// ConstrType
	"CONSTR_NULL":                ast.ConstrNull,
	"CONSTR_NOTNULL":             ast.ConstrNotNull,
	"CONSTR_DEFAULT":             ast.ConstrDefault,
	"CONSTR_IDENTITY":            ast.ConstrIdentity,
	"CONSTR_GENERATED":           ast.ConstrGenerated,
	"CONSTR_CHECK":               ast.ConstrCheck,
	"CONSTR_PRIMARY":             ast.ConstrPrimary,
	"CONSTR_UNIQUE":              ast.ConstrUnique,
	"CONSTR_EXCLUSION":           ast.ConstrExclusion,
	"CONSTR_FOREIGN":             ast.ConstrForeign,
	"CONSTR_ATTR_DEFERRABLE":     ast.ConstrAttrDeferrable,
	"CONSTR_ATTR_NOT_DEFERRABLE": ast.ConstrAttrNotDeferrable,
	"CONSTR_ATTR_DEFERRED":       ast.ConstrAttrDeferred,
	"CONSTR_ATTR_IMMEDIATE":      ast.ConstrAttrImmediate,

	// TransactionStmtKind
	"TRANS_STMT_BEGIN":             ast.TransBegin,
	"TRANS_STMT_START":             ast.TransStart,
	"TRANS_STMT_COMMIT":            ast.TransCommit,
	"TRANS_STMT_ROLLBACK":          ast.TransRollback,
	"TRANS_STMT_SAVEPOINT":         ast.TransSavepoint,
	"TRANS_STMT_RELEASE":           ast.TransRelease,
	"TRANS_STMT_ROLLBACK_TO":       ast.TransRollbackTo,
	"TRANS_STMT_PREPARE":           ast.TransPrepare,
	"TRANS_STMT_COMMIT_PREPARED":   ast.TransCommitPrepared,
	"TRANS_STMT_ROLLBACK_PREPARED": ast.TransRollbackPrepared,

	// LockClauseStrength / LockWaitPolicy
	"LCS_NONE":           ast.LockStrengthNone,
	"LCS_FORKEYSHARE":    ast.LockForKeyShare,
	"LCS_FORSHARE":       ast.LockForShare,
	"LCS_FORNOKEYUPDATE": ast.LockForNoKeyUpdate,
	"LCS_FORUPDATE":      ast.LockForUpdate,
	"LockWaitBlock":      ast.LockWaitBlock,
	"LockWaitSkip":       ast.LockWaitSkip,
	"LockWaitError":      ast.LockWaitError,

	// OnConflictAction
	"ONCONFLICT_NONE":    ast.OnConflictNone,
	"ONCONFLICT_NOTHING": ast.OnConflictNothing,
	"ONCONFLICT_UPDATE":  ast.OnConflictUpdate,

	// CTEMaterialize
	"CTEMaterializeDefault": ast.CTEMaterializeDefault,
	"CTEMaterializeAlways":  ast.CTEMaterializeAlways,
	"CTEMaterializeNever":   ast.CTEMaterializeNever,

	// DropBehavior
	"DROP_RESTRICT": ast.DropRestrict,
	"DROP_CASCADE":  ast.DropCascade,

	// RoleSpecType
	"ROLESPEC_CSTRING":      ast.RoleSpecNamed,
	"ROLESPEC_CURRENT_ROLE": ast.RoleSpecCurrentRole,
	"ROLESPEC_CURRENT_USER": ast.RoleSpecCurrentUser,
	"ROLESPEC_SESSION_USER": ast.RoleSpecSessionUser,
	"ROLESPEC_PUBLIC":       ast.RoleSpecPublic,

	// OnCommitAction
	"ONCOMMIT_NOOP":          ast.OnCommitNoop,
	"ONCOMMIT_PRESERVE_ROWS": ast.OnCommitPreserveRows,
	"ONCOMMIT_DELETE_ROWS":   ast.OnCommitDeleteRows,
	"ONCOMMIT_DROP":          ast.OnCommitDrop,

	// GrantTargetType
	"ACL_TARGET_OBJECT":        ast.GrantTargetObject,
	"ACL_TARGET_ALL_IN_SCHEMA": ast.GrantTargetAllInSchema,
	"ACL_TARGET_DEFAULTS":      ast.GrantTargetDefaults,

	// VariableSetKind
	"VAR_SET_VALUE":   ast.VarSetValue,
	"VAR_SET_DEFAULT": ast.VarSetDefault,
	"VAR_SET_CURRENT": ast.VarSetCurrent,
	"VAR_SET_MULTI":   ast.VarSetMulti,
	"VAR_RESET":       ast.VarReset,
	"VAR_RESET_ALL":   ast.VarResetAll,

	// CmdType
	"CMD_UNKNOWN": ast.CmdUnknown,
	"CMD_SELECT":  ast.CmdSelect,
	"CMD_UPDATE":  ast.CmdUpdate,
	"CMD_INSERT":  ast.CmdInsert,
	"CMD_DELETE":  ast.CmdDelete,

	// CoercionForm
	"COERCE_EXPLICIT_CALL": ast.CoerceExplicitCall,
	"COERCE_EXPLICIT_CAST": ast.CoerceExplicitCast,
	"COERCE_IMPLICIT_CAST": ast.CoerceImplicitCast,
	"COERCE_SQL_SYNTAX":    ast.CoerceSQLSyntax,

	// ObjectType
	"OBJECT_ACCESS_METHOD":   ast.ObjectAccessMethod,
	"OBJECT_AGGREGATE":       ast.ObjectAggregate,
	"OBJECT_CAST":            ast.ObjectCast,
	"OBJECT_COLUMN":          ast.ObjectColumn,
	"OBJECT_COLLATION":       ast.ObjectCollation,
	"OBJECT_CONVERSION":      ast.ObjectConversion,
	"OBJECT_DATABASE":        ast.ObjectDatabase,
	"OBJECT_DOMAIN":          ast.ObjectDomain,
	"OBJECT_EVENT_TRIGGER":   ast.ObjectEventTrigger,
	"OBJECT_EXTENSION":       ast.ObjectExtension,
	"OBJECT_FDW":             ast.ObjectFdw,
	"OBJECT_FOREIGN_SERVER":  ast.ObjectForeignServer,
	"OBJECT_FOREIGN_TABLE":   ast.ObjectForeignTable,
	"OBJECT_FUNCTION":        ast.ObjectFunction,
	"OBJECT_INDEX":           ast.ObjectIndex,
	"OBJECT_LANGUAGE":        ast.ObjectLanguage,
	"OBJECT_MATVIEW":         ast.ObjectMatView,
	"OBJECT_POLICY":          ast.ObjectPolicy,
	"OBJECT_PROCEDURE":       ast.ObjectProcedure,
	"OBJECT_PUBLICATION":     ast.ObjectPublication,
	"OBJECT_ROLE":            ast.ObjectRole,
	"OBJECT_ROUTINE":         ast.ObjectRoutine,
	"OBJECT_RULE":            ast.ObjectRule,
	"OBJECT_SCHEMA":          ast.ObjectSchema,
	"OBJECT_SEQUENCE":        ast.ObjectSequence,
	"OBJECT_SUBSCRIPTION":    ast.ObjectSubscription,
	"OBJECT_STATISTIC_EXT":   ast.ObjectStatisticExt,
	"OBJECT_TABCONSTRAINT":   ast.ObjectTabConstraint,
	"OBJECT_TABLE":           ast.ObjectTable,
	"OBJECT_TABLESPACE":      ast.ObjectTablespace,
	"OBJECT_TRIGGER":         ast.ObjectTrigger,
	"OBJECT_TSCONFIGURATION": ast.ObjectTSConfiguration,
	"OBJECT_TSDICTIONARY":    ast.ObjectTSDictionary,
	"OBJECT_TYPE":            ast.ObjectDataType,
	"OBJECT_VIEW":            ast.ObjectView,

	// AlterTableType
	"AT_AddColumn":          ast.AlterAddColumn,
	"AT_ColumnDefault":      ast.AlterColumnDefault,
	"AT_DropNotNull":        ast.AlterDropNotNull,
	"AT_SetNotNull":         ast.AlterSetNotNull,
	"AT_SetStatistics":      ast.AlterSetStatistics,
	"AT_SetOptions":         ast.AlterSetOptions,
	"AT_ResetOptions":       ast.AlterResetOptions,
	"AT_SetStorage":         ast.AlterSetStorage,
	"AT_DropColumn":         ast.AlterDropColumn,
	"AT_AddIndex":           ast.AlterAddIndex,
	"AT_AddConstraint":      ast.AlterAddConstraint,
	"AT_ValidateConstraint": ast.AlterValidateConstraint,
	"AT_DropConstraint":     ast.AlterDropConstraint,
	"AT_AlterColumnType":    ast.AlterAlterColumnType,
	"AT_ChangeOwner":        ast.AlterChangeOwner,
	"AT_ClusterOn":          ast.AlterClusterOn,
	"AT_DropCluster":        ast.AlterDropCluster,
	"AT_SetLogged":          ast.AlterSetLogged,
	"AT_SetUnLogged":        ast.AlterSetUnLogged,
	"AT_EnableTrig":         ast.AlterEnableTrig,
	"AT_DisableTrig":        ast.AlterDisableTrig,
	"AT_SetTableSpace":      ast.AlterSetTableSpace,
	"AT_AddInherit":         ast.AlterAddInherit,
	"AT_DropInherit":        ast.AlterDropInherit,
	"AT_EnableRowSecurity":  ast.AlterEnableRowSecurity,
	"AT_DisableRowSecurity": ast.AlterDisableRowSecurity,
	"AT_AttachPartition":    ast.AlterAttachPartition,
	"AT_DetachPartition":    ast.AlterDetachPartition,
	"AT_SetRelOptions":      ast.AlterSetRelOptions,

	// MinMaxOp
	"IS_GREATEST": ast.MinMaxGreatest,
	"IS_LEAST":    ast.MinMaxLeast,

	// SQLValueFunctionOp
	"SVFOP_CURRENT_DATE":        ast.SVFOpCurrentDate,
	"SVFOP_CURRENT_TIME":        ast.SVFOpCurrentTime,
	"SVFOP_CURRENT_TIME_N":      ast.SVFOpCurrentTimeN,
	"SVFOP_CURRENT_TIMESTAMP":   ast.SVFOpCurrentTimestamp,
	"SVFOP_CURRENT_TIMESTAMP_N": ast.SVFOpCurrentTimestampN,
	"SVFOP_LOCALTIME":           ast.SVFOpLocaltime,
	"SVFOP_LOCALTIME_N":         ast.SVFOpLocaltimeN,
	"SVFOP_LOCALTIMESTAMP":      ast.SVFOpLocaltimestamp,
	"SVFOP_LOCALTIMESTAMP_N":    ast.SVFOpLocaltimestampN,
	"SVFOP_CURRENT_ROLE":        ast.SVFOpCurrentRole,
	"SVFOP_CURRENT_USER":        ast.SVFOpCurrentUser,
	"SVFOP_USER":                ast.SVFOpUser,
	"SVFOP_SESSION_USER":        ast.SVFOpSessionUser,
	"SVFOP_CURRENT_CATALOG":     ast.SVFOpCurrentCatalog,
	"SVFOP_CURRENT_SCHEMA":      ast.SVFOpCurrentSchema,

	// DefElemAction
	"DEFELEM_UNSPEC": 0,
	"DEFELEM_SET":    1,
	"DEFELEM_ADD":    2,
	"DEFELEM_DROP":   3,
}
