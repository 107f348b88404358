package taxonomy

// Level 选择器层级
type Level int

const (
	LevelMajor Level = iota + 1
	LevelMid
	LevelMinor
)

// Selection 三级选择器状态
// Mid / Minor 为空表示 "该祖先下全部"
type Selection struct {
	Major string `json:"major"`
	Mid   string `json:"mid"`
	Minor string `json:"minor"`
}

// Action 选择动作
type Action struct {
	Level Level
	ID    string
}

// Reduce 状态迁移：选大类清空中/小类，选中类 (含 "全部") 清空小类，小类不级联
// 没有 "取消大类" 的动作，空 ID 的大类选择会被忽略
func Reduce(s Selection, a Action) Selection {
	switch a.Level {
	case LevelMajor:
		if a.ID == "" {
			return s
		}
		return Selection{Major: a.ID}
	case LevelMid:
		return Selection{Major: s.Major, Mid: a.ID}
	case LevelMinor:
		s.Minor = a.ID
		return s
	}
	return s
}

// SelectMajor 选择大类
func (s Selection) SelectMajor(id string) Selection {
	return Reduce(s, Action{Level: LevelMajor, ID: id})
}

// SelectMid 选择中类，"" 即 "全部" 标签
func (s Selection) SelectMid(id string) Selection {
	return Reduce(s, Action{Level: LevelMid, ID: id})
}

// SelectMinor 选择小类
func (s Selection) SelectMinor(id string) Selection {
	return Reduce(s, Action{Level: LevelMinor, ID: id})
}

// IsZero 没有任何大类 (事业部下无分类时组件不渲染)
func (s Selection) IsZero() bool {
	return s.Major == ""
}

// InitialSelection 初始状态：排序后的第一个大类
func InitialSelection(tree []*Node) Selection {
	if len(tree) == 0 {
		return Selection{}
	}
	return Selection{Major: tree[0].ID}
}

// Resolve 把外部传入的选择 (如 URL 参数) 套到树上
// 从初始状态出发依次迁移，不存在或不属于当前祖先的值被丢弃
func Resolve(tree []*Node, requested Selection) Selection {
	s := InitialSelection(tree)
	if s.IsZero() {
		return s
	}

	major := findChild(tree, requested.Major)
	if major != nil {
		s = s.SelectMajor(major.ID)
	} else {
		major = tree[0]
	}

	mid := findChild(major.Children, requested.Mid)
	if mid == nil {
		return s
	}
	s = s.SelectMid(mid.ID)

	if minor := findChild(mid.Children, requested.Minor); minor != nil {
		s = s.SelectMinor(minor.ID)
	}
	return s
}

func findChild(nodes []*Node, id string) *Node {
	if id == "" {
		return nil
	}
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
