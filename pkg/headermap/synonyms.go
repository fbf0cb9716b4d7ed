package headermap

import "regexp"

// synonymSet is one field's scored keyword tiers, exposed as data rather
// than compiled logic so operators can extend it without a code change.
type synonymSet struct {
	primary   []string
	secondary []string
	english   []string
	patterns  []*regexp.Regexp
}

// fieldSynonyms keeps both the Chinese and English alias tiers the source
// documents carry side by side; neither is translated, since header cells
// arrive in either language verbatim.
var fieldSynonyms = map[Field]synonymSet{
	FieldInstrumentTag: {
		primary:   []string{"位号", "仪表位号", "tag", "TAG"},
		secondary: []string{"设备位号", "点位号", "标号", "编号", "序号", "测点号", "变量号"},
		english:   []string{"instrument_tag", "device_tag", "point_tag", "NO", "No", "ID"},
		patterns:  compilePatterns(`.*位号.*`, `.*tag.*`, `.*编号.*`, `.*序号.*`),
	},
	FieldDescription: {
		primary:   []string{"名称", "描述", "检测点名称", "description"},
		secondary: []string{"说明", "功能描述", "测点名称", "点位名称", "变量名称", "仪表名称"},
		english:   []string{"name", "Name", "function", "purpose"},
		patterns:  compilePatterns(`.*名称.*`, `.*描述.*`, `.*说明.*`, `.*检测点.*`),
	},
	FieldSignalRange: {
		primary:   []string{"信号范围", "信号", "signal"},
		secondary: []string{"量程", "范围", "输入范围", "测量范围", "信号量程"},
		english:   []string{"range", "signal_range", "input_range"},
		patterns:  compilePatterns(`.*信号.*`, `.*量程.*`, `.*范围.*`),
	},
	FieldDataRange: {
		primary:   []string{"数据范围", "工程量", "工程值"},
		secondary: []string{"测量值", "数值范围", "量程范围", "工程量程", "显示范围"},
		english:   []string{"data_range", "engineering_range", "value_range"},
		patterns:  compilePatterns(`.*数据.*`, `.*工程.*`, `.*测量值.*`),
	},
	FieldSignalType: {
		primary:   []string{"信号类型", "类型", "type"},
		secondary: []string{"IO类型", "通道类型", "输入类型", "输出类型", "接口类型"},
		english:   []string{"signal_type", "io_type", "channel_type"},
		patterns:  compilePatterns(`.*类型.*`, `.*Type.*`, `.*IO.*`),
	},
	FieldUnits: {
		primary:   []string{"单位", "unit"},
		secondary: []string{"工程单位", "量纲", "计量单位", "测量单位"},
		english:   []string{"units", "engineering_unit"},
		patterns:  compilePatterns(`.*单位.*`, `.*unit.*`),
	},
	FieldPowerSupply: {
		primary:   []string{"供电", "现场仪表供电", "power"},
		secondary: []string{"电源", "仪表供电", "供电方式", "电源类型"},
		english:   []string{"power_supply", "supply", "voltage"},
		patterns:  compilePatterns(`.*供电.*`, `.*电源.*`, `.*power.*`),
	},
	FieldIsolation: {
		primary:   []string{"隔离", "isolation"},
		secondary: []string{"隔离器", "安全栅", "隔离方式", "隔离类型"},
		english:   []string{"isolator", "barrier", "safety_barrier"},
		patterns:  compilePatterns(`.*隔离.*`, `.*isolation.*`),
	},
	FieldRemarks: {
		primary:   []string{"备注", "说明", "remarks"},
		secondary: []string{"注释", "其他", "附注", "补充说明", "特殊说明"},
		english:   []string{"note", "notes", "comment"},
		patterns:  compilePatterns(`.*备注.*`, `.*说明.*`, `.*note.*`),
	},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}
