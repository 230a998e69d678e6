package jsonvalue

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML (and so also JSON) document.
func FromYAML(data []byte) (Value, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("YAML parse error: %w", err)
	}
	return FromGo(doc)
}

// ToYAML encodes v. Object keys are emitted in sorted order.
func ToYAML(v Value) ([]byte, error) {
	doc, err := ToGo(v)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("YAML encoding error: %w", err)
	}
	return out, nil
}

// ToStructpb converts v to the protobuf well-known Value type.
func ToStructpb(v Value) (*structpb.Value, error) {
	doc, err := ToGo(v)
	if err != nil {
		return nil, err
	}
	return structpb.NewValue(doc)
}

// FromStructpb converts a protobuf well-known Value.
func FromStructpb(pv *structpb.Value) (Value, error) {
	if pv == nil {
		return Null(), nil
	}
	switch k := pv.GetKind().(type) {
	case *structpb.Value_NullValue, nil:
		return Null(), nil
	case *structpb.Value_StringValue:
		return Str(k.StringValue), nil
	case *structpb.Value_NumberValue:
		return Num(k.NumberValue), nil
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue), nil
	case *structpb.Value_StructValue:
		fields := make(map[string]Value, len(k.StructValue.GetFields()))
		for name, field := range k.StructValue.GetFields() {
			v, err := FromStructpb(field)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = v
		}
		return Object(fields), nil
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		items := make([]Value, len(values))
		for i, item := range values {
			v, err := FromStructpb(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, k)
	}
}

// FromJSON decodes a JSON document through the protobuf JSON mapping.
func FromJSON(data []byte) (Value, error) {
	var pv structpb.Value
	if err := protojson.Unmarshal(data, &pv); err != nil {
		return Value{}, fmt.Errorf("JSON parse error: %w", err)
	}
	return FromStructpb(&pv)
}

// ToJSON encodes v as indented JSON.
func ToJSON(v Value) ([]byte, error) {
	pv, err := ToStructpb(v)
	if err != nil {
		return nil, err
	}
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(pv)
	if err != nil {
		return nil, fmt.Errorf("JSON encoding error: %w", err)
	}
	return out, nil
}
