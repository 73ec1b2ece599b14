package spam

// State 处理流程所处的状态
type State string

const (
	StateActive             State = "active"
	StateDisabling          State = "disabling"
	StateRoleAssigning      State = "role_assigning"
	StatePackagesAbandoning State = "packages_abandoning"
	StateVersionsRemoving   State = "versions_removing"
	StateIndexRemoving      State = "index_removing"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Outcome 对调用方的最终结论
type Outcome string

const (
	// Applied 关系库已提交，索引全部移除
	Applied Outcome = "applied"
	// Rejected 未做任何修改
	Rejected Outcome = "rejected"
	// PartiallyApplied 关系库已提交，部分包仍留在索引中
	PartiallyApplied Outcome = "partially_applied"
)

// PackageRef 受影响的包
type PackageRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// Result 一次处理的结果
// State 为 StateFailed 时 FailedStep 记录失败发生在哪一步
type Result struct {
	Outcome        Outcome      `json:"outcome"`
	State          State        `json:"state"`
	FailedStep     State        `json:"failed_step,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	Packages       []PackageRef `json:"packages"`
	FailedPackages []PackageRef `json:"failed_packages,omitempty"`
}

// MarkSpammerRequest 标记请求
type MarkSpammerRequest struct {
	Username string `json:"-" validate:"required,max=180,username"`
	Confirm  bool   `json:"confirm" validate:"required"`
}

// RetryIndexRemovalRequest 重新移除索引
type RetryIndexRemovalRequest struct {
	Packages []string `json:"packages" binding:"required,min=1,dive,required"`
}
