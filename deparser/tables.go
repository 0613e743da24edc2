package deparser

import "github.com/pgscope/pgscope/ast"

// Frozen keyword tables mapping wire enumerations to their rendered SQL.

// dropKindWords maps DropStmt.removeType to the object words after DROP.
var dropKindWords = map[int]string{
	ast.ObjectAccessMethod:    "ACCESS METHOD",
	ast.ObjectAggregate:       "AGGREGATE",
	ast.ObjectCast:            "CAST",
	ast.ObjectCollation:       "COLLATION",
	ast.ObjectConversion:      "CONVERSION",
	ast.ObjectDatabase:        "DATABASE",
	ast.ObjectDomain:          "DOMAIN",
	ast.ObjectEventTrigger:    "EVENT TRIGGER",
	ast.ObjectExtension:       "EXTENSION",
	ast.ObjectFdw:             "FOREIGN DATA WRAPPER",
	ast.ObjectForeignServer:   "SERVER",
	ast.ObjectForeignTable:    "FOREIGN TABLE",
	ast.ObjectFunction:        "FUNCTION",
	ast.ObjectIndex:           "INDEX",
	ast.ObjectLanguage:        "LANGUAGE",
	ast.ObjectMatView:         "MATERIALIZED VIEW",
	ast.ObjectPolicy:          "POLICY",
	ast.ObjectProcedure:       "PROCEDURE",
	ast.ObjectPublication:     "PUBLICATION",
	ast.ObjectRole:            "ROLE",
	ast.ObjectRoutine:         "ROUTINE",
	ast.ObjectRule:            "RULE",
	ast.ObjectSchema:          "SCHEMA",
	ast.ObjectSequence:        "SEQUENCE",
	ast.ObjectSubscription:    "SUBSCRIPTION",
	ast.ObjectStatisticExt:    "STATISTICS",
	ast.ObjectTable:           "TABLE",
	ast.ObjectTablespace:      "TABLESPACE",
	ast.ObjectTrigger:         "TRIGGER",
	ast.ObjectTSConfiguration: "TEXT SEARCH CONFIGURATION",
	ast.ObjectTSDictionary:    "TEXT SEARCH DICTIONARY",
	ast.ObjectDataType:        "TYPE",
	ast.ObjectView:            "VIEW",
}

// grantObjectWords maps GrantStmt.objtype to the word before the object
// list. Plain tables take no word.
var grantObjectWords = map[int]string{
	ast.ObjectTable:         "",
	ast.ObjectSequence:      "SEQUENCE",
	ast.ObjectDatabase:      "DATABASE",
	ast.ObjectDomain:        "DOMAIN",
	ast.ObjectFdw:           "FOREIGN DATA WRAPPER",
	ast.ObjectForeignServer: "FOREIGN SERVER",
	ast.ObjectFunction:      "FUNCTION",
	ast.ObjectLanguage:      "LANGUAGE",
	ast.ObjectSchema:        "SCHEMA",
	ast.ObjectTablespace:    "TABLESPACE",
	ast.ObjectDataType:      "TYPE",
}

// transactionKindWords maps TransactionStmt.kind to its leading keywords.
var transactionKindWords = map[int]string{
	ast.TransBegin:      "BEGIN",
	ast.TransStart:      "START TRANSACTION",
	ast.TransCommit:     "COMMIT",
	ast.TransRollback:   "ROLLBACK",
	ast.TransSavepoint:  "SAVEPOINT",
	ast.TransRelease:    "RELEASE SAVEPOINT",
	ast.TransRollbackTo: "ROLLBACK TO SAVEPOINT",
}

// lockStrengthWords maps LockingClause.strength to its FOR clause.
var lockStrengthWords = map[int]string{
	ast.LockForKeyShare:     "FOR KEY SHARE",
	ast.LockForShare:        "FOR SHARE",
	ast.LockForNoKeyUpdate:  "FOR NO KEY UPDATE",
	ast.LockForUpdate:       "FOR UPDATE",
}

// lockModeWords maps LockStmt.mode (1-based lock level) to the words
// between IN and MODE.
var lockModeWords = map[int]string{
	1: "ACCESS SHARE",
	2: "ROW SHARE",
	3: "ROW EXCLUSIVE",
	4: "SHARE UPDATE EXCLUSIVE",
	5: "SHARE",
	6: "SHARE ROW EXCLUSIVE",
	7: "EXCLUSIVE",
	8: "ACCESS EXCLUSIVE",
}

// ruleEventWords maps RuleStmt.event to the ON word of CREATE RULE.
var ruleEventWords = map[int]string{
	ast.CmdSelect: "SELECT",
	ast.CmdUpdate: "UPDATE",
	ast.CmdInsert: "INSERT",
	ast.CmdDelete: "DELETE",
}

// sqlValueFunctionWords maps SQLValueFunction.op to its keyword spelling.
var sqlValueFunctionWords = map[int]string{
	ast.SVFOpCurrentDate:       "current_date",
	ast.SVFOpCurrentTime:       "current_time",
	ast.SVFOpCurrentTimeN:      "current_time",
	ast.SVFOpCurrentTimestamp:  "current_timestamp",
	ast.SVFOpCurrentTimestampN: "current_timestamp",
	ast.SVFOpLocaltime:         "localtime",
	ast.SVFOpLocaltimeN:        "localtime",
	ast.SVFOpLocaltimestamp:    "localtimestamp",
	ast.SVFOpLocaltimestampN:   "localtimestamp",
	ast.SVFOpCurrentRole:       "current_role",
	ast.SVFOpCurrentUser:       "current_user",
	ast.SVFOpUser:              "user",
	ast.SVFOpSessionUser:       "session_user",
	ast.SVFOpCurrentCatalog:    "current_catalog",
	ast.SVFOpCurrentSchema:     "current_schema",
}

// Trigger timing and event bits (CreateTrigStmt.timing / .events), matching
// PostgreSQL's TRIGGER_TYPE_* flags.
const (
	triggerTimingBefore  = 1 << 1
	triggerTimingInstead = 1 << 6

	triggerEventInsert   = 1 << 2
	triggerEventDelete   = 1 << 3
	triggerEventUpdate   = 1 << 4
	triggerEventTruncate = 1 << 5
)
