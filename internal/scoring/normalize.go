package scoring

import "encoding/json"

var legacyOptionKeys = []string{"a", "b", "c", "d"}

// NormalizeOptions 将题目选项 JSON 归一化为字符串数组。
// 规范形态是 ["..","..","..",".."]；旧版数据可能是 {"a":..,"b":..,"c":..,"d":..}
// 对象形态，按 a/b/c/d 顺序展开并标记 legacy，核心计分只见数组形态。
func NormalizeOptions(raw json.RawMessage) (options []string, legacy bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, false
	}

	var keyed map[string]string
	if err := json.Unmarshal(raw, &keyed); err == nil {
		for _, k := range legacyOptionKeys {
			if v, ok := keyed[k]; ok {
				options = append(options, v)
			}
		}
		return options, true
	}

	return nil, false
}

// NormalizeAnswerSet 将正确答案 JSON 归一化为字符串数组。
// 兼容数组形态和单个字符串形态。
func NormalizeAnswerSet(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	return nil
}

// LegacyKey 返回某个选项文本对应的旧版按键（a/b/c/d）。
// 答案本身已是单个按键字母时直接返回，匹配不到返回空串。
func LegacyKey(q Question, answer string) string {
	for _, k := range legacyOptionKeys {
		if answer == k {
			return k
		}
	}
	for i, opt := range q.Options {
		if i >= len(legacyOptionKeys) {
			break
		}
		if opt == answer {
			return legacyOptionKeys[i]
		}
	}
	return ""
}
