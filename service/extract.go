package service

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var reasoningBlocks = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<think>.*?</think>`),
	regexp.MustCompile(`(?is)<thinking>.*?</thinking>`),
	regexp.MustCompile(`(?is)<reasoning>.*?</reasoning>`),
}

// StripReasoning 去掉部分模型输出的思考块，其中可能含有花括号
func StripReasoning(text string) string {
	for _, re := range reasoningBlocks {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// ExtractJSON 从模型原始输出中恢复唯一的 JSON 对象。
//
// 以 { 开头时整体解析；否则取第一个 { 到最后一个 } 的区间解析。任何一步失败都返回
// MalformedResponseError，不会返回猜测或残缺的文档。返回值只保证语法合法，结构校验由调用方完成。
func ExtractJSON(text string) (map[string]any, error) {
	body := StripReasoning(text)

	candidate := body
	if !strings.HasPrefix(body, "{") {
		start := strings.Index(body, "{")
		end := strings.LastIndex(body, "}")
		if start < 0 || end < start {
			return nil, &MalformedResponseError{Raw: text, Err: errors.New("未找到 JSON 对象")}
		}
		candidate = body[start : end+1]
	}

	doc, err := decodeObject(candidate)
	if err != nil {
		return nil, &MalformedResponseError{Raw: text, Err: err}
	}
	return doc, nil
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "JSON 语法错误")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("JSON 对象之后存在多余内容")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("顶层不是 JSON 对象")
	}
	return obj, nil
}

// marshalDocument 将解析结果重新序列化（保留数字原样）
func marshalDocument(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
