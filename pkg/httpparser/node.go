package httpparser

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// Node renders the parsed message into a shape-core AST:
//
//	{ "type": "request", "method": "GET", "url": "/a?x=1", "path": "/a",
//	  "version": "HTTP/1.1",
//	  "headers": [{"key": "Host", "value": "example.com"}, ...],
//	  "params":  [{"key": "x", "value": "1"}, ...] }
//
// Responses carry "statusCode" instead of the request fields and no
// "params". Before the start line is parsed Node returns nil.
func (p *Parser) Node() ast.SchemaNode {
	if p.msg.Version == "" {
		return nil
	}
	return messageToNode(p.msg, p.headers, p.params, nil)
}

func messageToNode(msg Message, headers HeaderMap, params ParamMap, body []byte) ast.SchemaNode {
	var props map[string]ast.SchemaNode
	if msg.IsRequest {
		props = map[string]ast.SchemaNode{
			"type":    ast.NewLiteralNode("request", zeroPos),
			"method":  ast.NewLiteralNode(msg.Method, zeroPos),
			"url":     ast.NewLiteralNode(msg.URL, zeroPos),
			"path":    ast.NewLiteralNode(msg.URLPath, zeroPos),
			"version": ast.NewLiteralNode(msg.Version, zeroPos),
			"headers": headersToNode(headers),
			"params":  paramsToNode(params),
		}
	} else {
		props = map[string]ast.SchemaNode{
			"type":       ast.NewLiteralNode("response", zeroPos),
			"version":    ast.NewLiteralNode(msg.Version, zeroPos),
			"statusCode": ast.NewLiteralNode(int64(msg.StatusCode), zeroPos),
			"headers":    headersToNode(headers),
		}
	}

	if body != nil {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}

	return ast.NewObjectNode(props, zeroPos)
}

func headersToNode(headers HeaderMap) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(headers))
	for i, h := range headers {
		elements[i] = pairNode(h.Key, h.Value)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

func paramsToNode(params ParamMap) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(params))
	for i, p := range params {
		elements[i] = pairNode(p.Key, p.Value)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

func pairNode(key, value string) ast.SchemaNode {
	return ast.NewObjectNode(map[string]ast.SchemaNode{
		"key":   ast.NewLiteralNode(key, zeroPos),
		"value": ast.NewLiteralNode(value, zeroPos),
	}, zeroPos)
}

// NodeToMessage converts an AST produced by Node back into its parts.
func NodeToMessage(node ast.SchemaNode) (Message, HeaderMap, ParamMap, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return Message{}, nil, nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	var msg Message

	msg.IsRequest = literalString(props, "type") == "request"
	msg.Method = literalString(props, "method")
	msg.URL = literalString(props, "url")
	msg.URLPath = literalString(props, "path")
	msg.Version = literalString(props, "version")
	if v, ok := props["statusCode"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			switch code := lit.Value().(type) {
			case int64:
				msg.StatusCode = int(code)
			case float64:
				msg.StatusCode = int(code)
			}
		}
	}

	var headers HeaderMap
	err := eachPair(props["headers"], func(k, v string) { headers.Set(k, v) })
	if err != nil {
		return Message{}, nil, nil, fmt.Errorf("headers: %w", err)
	}

	var params ParamMap
	err = eachPair(props["params"], func(k, v string) { params.Set(k, v) })
	if err != nil {
		return Message{}, nil, nil, fmt.Errorf("params: %w", err)
	}

	return msg, headers, params, nil
}

func literalString(props map[string]ast.SchemaNode, key string) string {
	if v, ok := props[key]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			s, _ := lit.Value().(string)
			return s
		}
	}
	return ""
}

func eachPair(node ast.SchemaNode, visit func(key, value string)) error {
	if node == nil {
		return nil
	}
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return fmt.Errorf("expected ArrayDataNode, got %T", node)
	}

	for _, elem := range arr.Elements() {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			return fmt.Errorf("expected ObjectNode in array, got %T", elem)
		}
		props := obj.Properties()
		visit(literalString(props, "key"), literalString(props, "value"))
	}
	return nil
}
