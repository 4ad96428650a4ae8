// Package digest 是条目流水线中与网络无关的部分：
// 按时间窗口和关键词过滤、按 id 去重、渲染成 markdown 文本。
// 所有函数都只读输入、返回新切片，不修改条目本身。
package digest
