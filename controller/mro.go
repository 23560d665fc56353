package controller

import "reflect"

// RoutesProvider is implemented by every controller or mixin level that
// declares routes.
type RoutesProvider interface {
	Routes() []*RouteFunction
}

// ancestorValues resolves the embedding order of a controller instance: the
// instance itself first, then every embedded struct breadth-first, each
// type visited once. This is the resolution order the attach pipeline walks
// when collecting declared routes, so a mixin embedded along several paths
// contributes exactly one visit.
func ancestorValues(instance any) []reflect.Value {
	root := reflect.ValueOf(instance)
	if !root.IsValid() {
		return nil
	}

	seen := make(map[reflect.Type]bool)
	var ordered []reflect.Value
	queue := []reflect.Value{root}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				continue
			}
		}
		elem := v
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}
		if seen[elem.Type()] {
			continue
		}
		seen[elem.Type()] = true
		ordered = append(ordered, v)

		t := elem.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.Anonymous {
				continue
			}
			fv := elem.Field(i)
			switch fv.Kind() {
			case reflect.Struct:
				if fv.CanAddr() {
					queue = append(queue, fv.Addr())
				} else {
					queue = append(queue, fv)
				}
			case reflect.Ptr:
				queue = append(queue, fv)
			}
		}
	}
	return ordered
}
