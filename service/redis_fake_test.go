package service

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// memRedis 通过 hook 在客户端内部执行命令, 不会建立连接
type memRedis struct {
	mu      sync.Mutex
	strings map[string]string
	lists   map[string][]string
	ttls    map[string]time.Duration
}

var _ redis.Hook = (*memRedis)(nil)

func newMemRedis(t *testing.T) (*redis.Client, *memRedis) {
	t.Helper()
	m := &memRedis{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
		ttls:    make(map[string]time.Duration),
	}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(m)
	t.Cleanup(func() { _ = client.Close() })
	return client, m
}

func (m *memRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, fmt.Errorf("memRedis: dial %s not allowed", addr)
	}
}

func (m *memRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		return m.process(cmd)
	}
}

func (m *memRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			if err := m.process(cmd); err != nil {
				return err
			}
		}
		return nil
	}
}

func (m *memRedis) list(key string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lists[key]...)
}

func (m *memRedis) ttl(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}

func (m *memRedis) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.strings[key]
	return v, ok
}

func (m *memRedis) process(cmd redis.Cmder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	args := cmd.Args()
	arg := func(i int) string { return argString(args[i]) }
	switch strings.ToLower(cmd.Name()) {
	case "multi":
		cmd.(*redis.StatusCmd).SetVal("OK")
	case "exec":
	case "get":
		v, ok := m.strings[arg(1)]
		if !ok {
			cmd.SetErr(redis.Nil)
			return redis.Nil
		}
		cmd.(*redis.StringCmd).SetVal(v)
	case "mget":
		vals := make([]interface{}, 0, len(args)-1)
		for i := 1; i < len(args); i++ {
			if v, ok := m.strings[arg(i)]; ok {
				vals = append(vals, v)
			} else {
				vals = append(vals, nil)
			}
		}
		cmd.(*redis.SliceCmd).SetVal(vals)
	case "set":
		key := arg(1)
		nx := false
		var ttl time.Duration
		for i := 3; i < len(args); i++ {
			switch strings.ToLower(arg(i)) {
			case "nx":
				nx = true
			case "ex":
				i++
				ttl = time.Duration(argInt(args[i])) * time.Second
			case "px":
				i++
				ttl = time.Duration(argInt(args[i])) * time.Millisecond
			}
		}
		_, exists := m.strings[key]
		written := !nx || !exists
		if written {
			m.strings[key] = arg(2)
			m.ttls[key] = ttl
		}
		switch c := cmd.(type) {
		case *redis.BoolCmd:
			c.SetVal(written)
		case *redis.StatusCmd:
			c.SetVal("OK")
		}
	case "eval":
		// 只支持解锁脚本: 值与 ARGV[1] 相同才删除
		key, token := arg(3), arg(4)
		var n int64
		if v, ok := m.strings[key]; ok && v == token {
			delete(m.strings, key)
			delete(m.ttls, key)
			n = 1
		}
		cmd.(*redis.Cmd).SetVal(n)
	case "del":
		var n int64
		for i := 1; i < len(args); i++ {
			key := arg(i)
			_, isString := m.strings[key]
			_, isList := m.lists[key]
			if isString || isList {
				n++
			}
			delete(m.strings, key)
			delete(m.lists, key)
			delete(m.ttls, key)
		}
		cmd.(*redis.IntCmd).SetVal(n)
	case "incr":
		var cur int64
		if v, ok := m.strings[arg(1)]; ok {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				cmd.SetErr(err)
				return err
			}
			cur = parsed
		}
		cur++
		m.strings[arg(1)] = strconv.FormatInt(cur, 10)
		cmd.(*redis.IntCmd).SetVal(cur)
	case "lpush":
		key := arg(1)
		for i := 2; i < len(args); i++ {
			m.lists[key] = append([]string{arg(i)}, m.lists[key]...)
		}
		cmd.(*redis.IntCmd).SetVal(int64(len(m.lists[key])))
	case "ltrim":
		key := arg(1)
		start, stop := listRange(len(m.lists[key]), argInt(args[2]), argInt(args[3]))
		if start > stop {
			delete(m.lists, key)
		} else {
			m.lists[key] = append([]string(nil), m.lists[key][start:stop+1]...)
		}
		cmd.(*redis.StatusCmd).SetVal("OK")
	case "lrange":
		l := m.lists[arg(1)]
		start, stop := listRange(len(l), argInt(args[2]), argInt(args[3]))
		out := []string{}
		if start <= stop {
			out = append(out, l[start:stop+1]...)
		}
		cmd.(*redis.StringSliceCmd).SetVal(out)
	case "expire":
		key := arg(1)
		_, isString := m.strings[key]
		_, isList := m.lists[key]
		if isString || isList {
			m.ttls[key] = time.Duration(argInt(args[2])) * time.Second
		}
		cmd.(*redis.BoolCmd).SetVal(isString || isList)
	default:
		err := fmt.Errorf("memRedis: unsupported command %q", cmd.Name())
		cmd.SetErr(err)
		return err
	}
	return nil
}

// listRange 把 redis 风格的下标换算为闭区间, start > stop 表示空
func listRange(n int, start, stop int64) (int, int) {
	if start < 0 {
		start += int64(n)
	}
	if stop < 0 {
		stop += int64(n)
	}
	if start < 0 {
		start = 0
	}
	if stop >= int64(n) {
		stop = int64(n) - 1
	}
	return int(start), int(stop)
}

func argString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

func argInt(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		parsed, _ := strconv.ParseInt(argString(v), 10, 64)
		return parsed
	}
}
