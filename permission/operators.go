package permission

import "github.com/warin-th/ctrlkit/engine"

// And combines policies; every operand must permit. The denial message is
// taken from the first operand that denies.
func And(operands ...Permission) Permission {
	return &andPermission{operands: operands}
}

// Or combines policies; any single operand permitting is enough.
func Or(operands ...Permission) Permission {
	return &orPermission{operands: operands}
}

// Not inverts a policy. An optional message overrides the operand's own.
func Not(operand Permission, message ...string) Permission {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	return &notPermission{operand: operand, msg: msg}
}

type andPermission struct {
	operands []Permission
	denied   Permission
}

func (p *andPermission) Fresh() Permission {
	return &andPermission{operands: p.operands}
}

func (p *andPermission) HasPermission(req engine.Request, controller any) bool {
	for _, op := range p.operands {
		if !op.HasPermission(req, controller) {
			p.denied = op
			return false
		}
	}
	return true
}

func (p *andPermission) HasObjectPermission(req engine.Request, controller any, obj any) bool {
	for _, op := range p.operands {
		if !op.HasObjectPermission(req, controller, obj) {
			p.denied = op
			return false
		}
	}
	return true
}

func (p *andPermission) Message() string {
	if p.denied != nil {
		return p.denied.Message()
	}
	return ""
}

type orPermission struct {
	operands []Permission
}

func (p *orPermission) HasPermission(req engine.Request, controller any) bool {
	for _, op := range p.operands {
		if op.HasPermission(req, controller) {
			return true
		}
	}
	return len(p.operands) == 0
}

func (p *orPermission) HasObjectPermission(req engine.Request, controller any, obj any) bool {
	for _, op := range p.operands {
		if op.HasObjectPermission(req, controller, obj) {
			return true
		}
	}
	return len(p.operands) == 0
}

func (p *orPermission) Message() string {
	for _, op := range p.operands {
		if msg := op.Message(); msg != "" {
			return msg
		}
	}
	return ""
}

type notPermission struct {
	operand Permission
	msg     string
}

func (p *notPermission) HasPermission(req engine.Request, controller any) bool {
	return !p.operand.HasPermission(req, controller)
}

func (p *notPermission) HasObjectPermission(req engine.Request, controller any, obj any) bool {
	return !p.operand.HasObjectPermission(req, controller, obj)
}

func (p *notPermission) Message() string { return p.msg }
