package session

import (
	"sort"
	"sync"
)

// ContextType represents credential context type
type ContextType string

const (
	ContextVOMS     ContextType = "VOMS"
	ContextROCCI    ContextType = "rocci"
	ContextUserPass ContextType = "UserPass"
)

// Context attribute names
const (
	AttrUserProxy             = "UserProxy"
	AttrUserID                = "UserID"
	AttrUserCert              = "UserCert"
	AttrUserKey               = "UserKey"
	AttrUserPass              = "UserPass"
	AttrCredentials           = "Credentials"
	AttrJobServiceAttributes  = "JobServiceAttributes"
	AttrDataServiceAttributes = "DataServiceAttributes"
)

// Context represents typed credential attribute bag
type Context struct {
	Type             ContextType
	attributes       map[string]string
	vectorAttributes map[string][]string
	mux              sync.RWMutex
}

// SetAttribute sets scalar attribute
func (c *Context) SetAttribute(name, value string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.attributes[name] = value
}

// Attribute returns scalar attribute
func (c *Context) Attribute(name string) (string, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	value, ok := c.attributes[name]
	return value, ok
}

// SetVectorAttribute sets vector attribute
func (c *Context) SetVectorAttribute(name string, values []string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.vectorAttributes[name] = append([]string{}, values...)
}

// VectorAttribute returns vector attribute
func (c *Context) VectorAttribute(name string) ([]string, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	values, ok := c.vectorAttributes[name]
	if !ok {
		return nil, false
	}
	return append([]string{}, values...), true
}

// Attributes returns sorted names of all defined attributes
func (c *Context) Attributes() []string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	ret := make([]string, 0, len(c.attributes)+len(c.vectorAttributes))
	for k := range c.attributes {
		ret = append(ret, k)
	}
	for k := range c.vectorAttributes {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// NewContext creates a context
func NewContext(contextType ContextType) *Context {
	return &Context{
		Type:             contextType,
		attributes:       map[string]string{},
		vectorAttributes: map[string][]string{},
	}
}
