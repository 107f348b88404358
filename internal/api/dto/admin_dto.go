package dto

// EntityResult 单个实体集合的迁移/快照结果
type EntityResult struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// SyncReport 迁移/快照报告，允许部分成功
type SyncReport struct {
	Source  string         `json:"source"`
	Target  string         `json:"target"`
	Results []EntityResult `json:"results"`
}

// Succeeded 是否全部成功
func (r *SyncReport) Succeeded() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}
