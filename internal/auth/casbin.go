package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/util"
	sqlxadapter "github.com/memwey/casbin-sqlx-adapter"
)

// modelText is the RBAC model: subjects inherit roles through g, objects
// are matched with keyMatch2 path patterns and actions with a regex.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// NewModel returns the casbin model used by the enforcer.
func NewModel() (model.Model, error) {
	return model.NewModelFromString(modelText)
}

// NewEnforcer creates a Casbin enforcer whose policies are stored in the
// application database and loads them.
//
// Parameters:
//   - driverName: The name of the database driver (e.g., "mysql").
//   - dsn: The Data Source Name for the database connection.
func NewEnforcer(driverName, dsn string) (*casbin.Enforcer, error) {
	opts := &sqlxadapter.AdapterOptions{
		DriverName:     driverName,
		DataSourceName: dsn,
		TableName:      "casbin_rule",
	}
	adapter := sqlxadapter.NewAdapterFromOptions(opts)

	m, err := NewModel()
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

// NewMemoryEnforcer creates an enforcer without persistent storage.
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := NewModel()
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
