package ast

// Wire values for the parse-tree enumerations. Values pinned by the wire
// contract follow the PostgreSQL C enums; the rest are stable values owned
// by this package, produced by the parser bridge and consumed by the
// extractor and deparser.

// SelectStmt.op
const (
	SetOpNone = iota
	SetOpUnion
	SetOpIntersect
	SetOpExcept
)

// BoolExpr.boolop
const (
	BoolExprAnd = iota
	BoolExprOr
	BoolExprNot
)

// A_Expr.kind
const (
	AExprOp = iota
	AExprOpAny
	AExprOpAll
	AExprDistinct
	AExprNotDistinct
	AExprNullif
	AExprIn
	AExprLike
	AExprILike
	AExprSimilar
	AExprBetween
	AExprNotBetween
	AExprBetweenSym
	AExprNotBetweenSym
)

// JoinExpr.jointype
const (
	JoinInner = iota
	JoinLeft
	JoinFull
	JoinRight
)

// SortBy.sortby_dir
const (
	SortByDefault = iota
	SortByAsc
	SortByDesc
	SortByUsing
)

// SortBy.sortby_nulls
const (
	SortByNullsDefault = iota
	SortByNullsFirst
	SortByNullsLast
)

// NullTest.nulltesttype
const (
	NullTestIsNull = iota
	NullTestIsNotNull
)

// BooleanTest.booltesttype
const (
	BoolTestIsTrue = iota
	BoolTestIsNotTrue
	BoolTestIsFalse
	BoolTestIsNotFalse
	BoolTestIsUnknown
	BoolTestIsNotUnknown
)

// SubLink.subLinkType
const (
	SubLinkExists = iota
	SubLinkAll
	SubLinkAny
	SubLinkRowCompare
	SubLinkExpr
	SubLinkMultiExpr
	SubLinkArray
	SubLinkCTE
)

// Constraint.contype
const (
	ConstrNull = iota
	ConstrNotNull
	ConstrDefault
	ConstrIdentity
	ConstrGenerated
	ConstrCheck
	ConstrPrimary
	ConstrUnique
	ConstrExclusion
	ConstrForeign
	ConstrAttrDeferrable
	ConstrAttrNotDeferrable
	ConstrAttrDeferred
	ConstrAttrImmediate
)

// TransactionStmt.kind
const (
	TransBegin = iota
	TransStart
	TransCommit
	TransRollback
	TransSavepoint
	TransRelease
	TransRollbackTo
	TransPrepare
	TransCommitPrepared
	TransRollbackPrepared
)

// LockingClause.strength
const (
	LockStrengthNone = iota
	LockForKeyShare
	LockForShare
	LockForNoKeyUpdate
	LockForUpdate
)

// LockingClause.waitPolicy
const (
	LockWaitBlock = iota
	LockWaitSkip
	LockWaitError
)

// OnConflictClause.action
const (
	OnConflictNone = iota
	OnConflictNothing
	OnConflictUpdate
)

// CommonTableExpr.ctematerialized
const (
	CTEMaterializeDefault = iota
	CTEMaterializeAlways
	CTEMaterializeNever
)

// DropStmt.behavior, AlterTableCmd.behavior
const (
	DropRestrict = iota
	DropCascade
)

// RoleSpec.roletype; values pinned by the wire contract.
const (
	RoleSpecNamed = iota
	RoleSpecCurrentUser
	RoleSpecSessionUser
	RoleSpecPublic
	RoleSpecCurrentRole
)

// IntoClause.onCommit; values pinned by the wire contract.
const (
	OnCommitNoop = iota
	OnCommitPreserveRows
	OnCommitDeleteRows
	OnCommitDrop
)

// GrantStmt.targtype
const (
	GrantTargetObject = iota
	GrantTargetAllInSchema
	GrantTargetDefaults
)

// VariableSetStmt.kind
const (
	VarSetValue = iota
	VarSetDefault
	VarSetCurrent
	VarSetMulti
	VarReset
	VarResetAll
)

// ObjectType (GrantStmt.objtype, DropStmt.removeType, RenameStmt.renameType).
// Stable values owned by this package.
const (
	ObjectAccessMethod = iota
	ObjectAggregate
	ObjectCast
	ObjectColumn
	ObjectCollation
	ObjectConversion
	ObjectDatabase
	ObjectDomain
	ObjectEventTrigger
	ObjectExtension
	ObjectFdw
	ObjectForeignServer
	ObjectForeignTable
	ObjectFunction
	ObjectIndex
	ObjectLanguage
	ObjectMatView
	ObjectPolicy
	ObjectProcedure
	ObjectPublication
	ObjectRole
	ObjectRoutine
	ObjectRule
	ObjectSchema
	ObjectSequence
	ObjectSubscription
	ObjectStatisticExt
	ObjectTabConstraint
	ObjectTable
	ObjectTablespace
	ObjectTrigger
	ObjectTSConfiguration
	ObjectTSDictionary
	ObjectDataType
	ObjectView
)

// AlterTableCmd.subtype. Stable values owned by this package.
const (
	AlterAddColumn = iota
	AlterColumnDefault
	AlterDropNotNull
	AlterSetNotNull
	AlterSetStatistics
	AlterSetOptions
	AlterResetOptions
	AlterSetStorage
	AlterDropColumn
	AlterAddIndex
	AlterAddConstraint
	AlterValidateConstraint
	AlterDropConstraint
	AlterAlterColumnType
	AlterChangeOwner
	AlterClusterOn
	AlterDropCluster
	AlterSetLogged
	AlterSetUnLogged
	AlterEnableTrig
	AlterDisableTrig
	AlterSetTableSpace
	AlterAddInherit
	AlterDropInherit
	AlterEnableRowSecurity
	AlterDisableRowSecurity
	AlterAttachPartition
	AlterDetachPartition
	AlterSetRelOptions
)

// RuleStmt.event (command type); values pinned by the wire contract.
const (
	CmdUnknown = iota
	CmdSelect
	CmdUpdate
	CmdInsert
	CmdDelete
)

// RowExpr.row_format (coercion form)
const (
	CoerceExplicitCall = iota
	CoerceExplicitCast
	CoerceImplicitCast
	CoerceSQLSyntax
)

// SQLValueFunction.op
const (
	SVFOpCurrentDate = iota
	SVFOpCurrentTime
	SVFOpCurrentTimeN
	SVFOpCurrentTimestamp
	SVFOpCurrentTimestampN
	SVFOpLocaltime
	SVFOpLocaltimeN
	SVFOpLocaltimestamp
	SVFOpLocaltimestampN
	SVFOpCurrentRole
	SVFOpCurrentUser
	SVFOpUser
	SVFOpSessionUser
	SVFOpCurrentCatalog
	SVFOpCurrentSchema
)

// MinMaxExpr.op
const (
	MinMaxGreatest = iota
	MinMaxLeast
)

// Window frame option bits (WindowDef.frameOptions), matching PostgreSQL's
// FRAMEOPTION_* flags.
const (
	FrameNondefault          = 0x00001
	FrameRange               = 0x00002
	FrameRows                = 0x00004
	FrameGroups              = 0x00008
	FrameBetween             = 0x00010
	FrameStartUnboundedPre   = 0x00020
	FrameEndUnboundedPre     = 0x00040
	FrameStartUnboundedFol   = 0x00080
	FrameEndUnboundedFol     = 0x00100
	FrameStartCurrentRow     = 0x00200
	FrameEndCurrentRow       = 0x00400
	FrameStartOffsetPreceding = 0x00800
	FrameEndOffsetPreceding  = 0x01000
	FrameStartOffsetFollowing = 0x02000
	FrameEndOffsetFollowing  = 0x04000
)

// Interval typmod qualifier bits, matching PostgreSQL's tmask encoding
// (1 << position in the datetime token table).
const (
	IntervalMaskMonth  = 1 << 1
	IntervalMaskYear   = 1 << 2
	IntervalMaskDay    = 1 << 3
	IntervalMaskHour   = 1 << 10
	IntervalMaskMinute = 1 << 11
	IntervalMaskSecond = 1 << 12
	IntervalFullRange  = 0x7FFF
)
