package models

// AlertFlags are the user-configurable alert categories. A disabled category
// makes the engine drop matching records before an alert is built.
type AlertFlags struct {
	CloudEnabled    bool `mapstructure:"cloud_enabled" yaml:"cloud_enabled"`
	CloudNewFiles   bool `mapstructure:"cloud_new_files" yaml:"cloud_new_files"`
	CloudNewShare   bool `mapstructure:"cloud_new_share" yaml:"cloud_new_share"`
	CloudDelShare   bool `mapstructure:"cloud_del_share" yaml:"cloud_del_share"`
	ContactsEnabled bool `mapstructure:"contacts_enabled" yaml:"contacts_enabled"`
	ContactsFcrIn   bool `mapstructure:"contacts_fcr_in" yaml:"contacts_fcr_in"`     // входящие запросы контакта
	ContactsFcrDel  bool `mapstructure:"contacts_fcr_del" yaml:"contacts_fcr_del"`   // удаление контакта
	ContactsFcrAcpt bool `mapstructure:"contacts_fcr_acpt" yaml:"contacts_fcr_acpt"` // принятие исходящего запроса
}

// DefaultAlertFlags enables every category.
func DefaultAlertFlags() AlertFlags {
	return AlertFlags{
		CloudEnabled:    true,
		CloudNewFiles:   true,
		CloudNewShare:   true,
		CloudDelShare:   true,
		ContactsEnabled: true,
		ContactsFcrIn:   true,
		ContactsFcrDel:  true,
		ContactsFcrAcpt: true,
	}
}
